package main

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/wortkarte/internal/export"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type ExportFormat export.Format

// Set implements pflag.Value.
func (f *ExportFormat) Set(v string) error {
	for _, format := range export.Formats {
		if v == string(format) {
			*f = ExportFormat(format)
			return nil
		}
	}

	names := make([]string, 0, len(export.Formats))
	for _, format := range export.Formats {
		names = append(names, string(format))
	}
	return fmt.Errorf("invalid value %q, valid values are %s", v, strings.Join(names, ", "))
}

// String implements pflag.Value.
func (f *ExportFormat) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Type implements pflag.Value.
func (f *ExportFormat) Type() string {
	return "ExportFormat"
}

var (
	_ pflag.Value = (*ExportFormat)(nil)
)

func newExportCommand() *cobra.Command {
	format := ExportFormat(export.FormatMarkdown)
	var outputDirectory string

	command := &cobra.Command{
		Use:   "export",
		Short: "Export saved flashcards as markdown, PDF or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadStore()
			if err != nil {
				return err
			}
			if outputDirectory == "" {
				outputDirectory = cfg.Outputs.Directory
			}

			exporter := export.NewExporter(cfg.Templates.MarkdownDirectory, outputDirectory)
			path, err := exporter.Export(store.Cards(), export.Format(format))
			if err != nil {
				return fmt.Errorf("exporter.Export() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d flashcard(s) to %s\n", store.Len(), path)
			return nil
		},
	}
	command.Flags().Var(&format, "format", "Export format. Options: markdown, pdf, yaml")
	command.Flags().StringVar(&outputDirectory, "output", "", "Output directory (defaults to outputs.directory)")
	return command
}
