package assets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

func parseTemplateWithFallback(templatePath, fallbackName, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
		"inc": func(i int) int {
			return i + 1
		},
	}

	// First, try to read from the filesystem
	if _, err := os.Stat(templatePath); err == nil {
		fileName := filepath.Base(templatePath)
		tmpl, err := template.New(fileName).
			Funcs(funcMap).
			ParseFiles(templatePath)
		if err == nil {
			return tmpl, nil
		}
		slog.Default().Warn("failed to parse a templatePath",
			slog.String("templatePath", templatePath),
			slog.Any("error", err),
		)
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}

	return tmpl, nil
}
