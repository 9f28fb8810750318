package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/at-ishikawa/wortkarte/internal/flashcard"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type validationResult struct {
	incomplete []incompleteCard
	duplicates map[string][]flashcard.Flashcard
}

type incompleteCard struct {
	row    int
	card   flashcard.Flashcard
	fields []string
}

func (result validationResult) errorCount() int {
	return len(result.incomplete) + len(result.duplicates)
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Report flashcards with empty fields or duplicate words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadStore()
			if err != nil {
				return err
			}

			result := validateStore(store)
			displayValidationResults(cmd.OutOrStdout(), store.Path(), result)
			if count := result.errorCount(); count > 0 {
				return fmt.Errorf("validation failed with %d error(s)", count)
			}
			return nil
		},
	}
}

func validateStore(store *flashcard.Store) validationResult {
	result := validationResult{
		duplicates: store.Duplicates(),
	}
	for i, card := range store.Cards() {
		if fields := card.MissingFields(); len(fields) > 0 {
			// rows are 1-based after the header line
			result.incomplete = append(result.incomplete, incompleteCard{row: i + 2, card: card, fields: fields})
		}
	}
	return result
}

func displayValidationResults(w io.Writer, path string, result validationResult) {
	failed := color.New(color.FgRed)
	passed := color.New(color.FgGreen)

	_, _ = fmt.Fprintln(w, "=== Validation Results ===")
	if len(result.incomplete) > 0 {
		_, _ = failed.Fprintf(w, "✗ Incomplete flashcards (%d):\n", len(result.incomplete))
		for _, entry := range result.incomplete {
			_, _ = fmt.Fprintf(w, "  - %s:%d %q is missing %s\n", path, entry.row, entry.card.Word, strings.Join(entry.fields, ", "))
		}
	}

	if len(result.duplicates) > 0 {
		_, _ = failed.Fprintf(w, "✗ Duplicate words (%d):\n", len(result.duplicates))
		keys := make([]string, 0, len(result.duplicates))
		for key := range result.duplicates {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			words := make([]string, 0, len(result.duplicates[key]))
			for _, card := range result.duplicates[key] {
				words = append(words, card.Word)
			}
			_, _ = fmt.Fprintf(w, "  - %s\n", strings.Join(words, ", "))
		}
	}

	if result.errorCount() == 0 {
		_, _ = passed.Fprintf(w, "✓ %s is valid\n", path)
	}
}
