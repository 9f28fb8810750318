// Package export writes the saved flashcards to markdown, PDF or YAML files.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/at-ishikawa/wortkarte/internal/assets"
	"github.com/at-ishikawa/wortkarte/internal/flashcard"
	"github.com/at-ishikawa/wortkarte/internal/pdf"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
	FormatYAML     Format = "yaml"
)

const (
	baseFileName = "flashcards"
	deckTitle    = "German Flashcards"
)

var Formats = []Format{FormatMarkdown, FormatPDF, FormatYAML}

func (f Format) extension() string {
	switch f {
	case FormatPDF:
		return ".pdf"
	case FormatYAML:
		return ".yml"
	default:
		return ".md"
	}
}

// Exporter renders cards relative to the configured template and output directories.
type Exporter struct {
	templateDirectory string
	outputDirectory   string
	now               func() time.Time
}

func NewExporter(templateDirectory, outputDirectory string) *Exporter {
	return &Exporter{
		templateDirectory: templateDirectory,
		outputDirectory:   outputDirectory,
		now:               time.Now,
	}
}

// OutputPath is the file Export writes for format.
func (exporter *Exporter) OutputPath(format Format) string {
	return filepath.Join(exporter.outputDirectory, baseFileName+format.extension())
}

// Export writes cards in the given format and returns the written path.
func (exporter *Exporter) Export(cards []flashcard.Flashcard, format Format) (string, error) {
	if err := os.MkdirAll(exporter.outputDirectory, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", exporter.outputDirectory, err)
	}

	outputPath := exporter.OutputPath(format)
	switch format {
	case FormatMarkdown:
		content, err := exporter.markdown(cards)
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(outputPath, content, 0644); err != nil {
			return "", fmt.Errorf("os.WriteFile(%s) > %w", outputPath, err)
		}
	case FormatPDF:
		// the PDF is rendered from the markdown export, which is kept next to it
		markdownPath := exporter.OutputPath(FormatMarkdown)
		if _, err := exporter.Export(cards, FormatMarkdown); err != nil {
			return "", err
		}
		if _, err := pdf.ConvertMarkdownToPDF(markdownPath); err != nil {
			return "", fmt.Errorf("pdf.ConvertMarkdownToPDF(%s) > %w", markdownPath, err)
		}
	case FormatYAML:
		if err := writeYamlFile(outputPath, cards); err != nil {
			return "", fmt.Errorf("writeYamlFile(%s) > %w", outputPath, err)
		}
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
	return outputPath, nil
}

func (exporter *Exporter) markdown(cards []flashcard.Flashcard) ([]byte, error) {
	data := assets.FlashcardTemplate{
		Title:      deckTitle,
		ExportedAt: exporter.now(),
		Cards:      make([]assets.FlashcardCard, 0, len(cards)),
	}
	for _, card := range cards {
		data.Cards = append(data.Cards, assets.FlashcardCard{
			Word:               card.Word,
			GermanExplanation:  card.GermanExplanation,
			EnglishTranslation: card.EnglishTranslation,
			ExampleSentence:    card.ExampleSentence,
		})
	}

	var buf bytes.Buffer
	templatePath := filepath.Join(exporter.templateDirectory, assets.FlashcardTemplateName)
	if err := assets.WriteFlashcards(&buf, templatePath, data); err != nil {
		return nil, fmt.Errorf("assets.WriteFlashcards() > %w", err)
	}
	return buf.Bytes(), nil
}

func writeYamlFile[T any](path string, data T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoder.Encode() > %w", err)
	}
	return encoder.Close()
}
