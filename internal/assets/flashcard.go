package assets

import (
	_ "embed"
	"fmt"
	"io"
	"time"
)

const FlashcardTemplateName = "flashcards.md.go.tmpl"

//go:embed templates/flashcards.md.go.tmpl
var fallbackFlashcardTemplate string

// FlashcardTemplate is the top-level data structure for the flashcard deck template
type FlashcardTemplate struct {
	Title      string
	ExportedAt time.Time
	Cards      []FlashcardCard
}

// FlashcardCard represents a vocabulary card for template rendering
type FlashcardCard struct {
	Word               string
	GermanExplanation  string
	EnglishTranslation string
	ExampleSentence    string
}

// WriteFlashcards renders the deck with the template at templatePath, or with the
// embedded template when the path does not exist or cannot be parsed.
func WriteFlashcards(output io.Writer, templatePath string, templateData FlashcardTemplate) error {
	tmpl, err := parseTemplateWithFallback(templatePath, FlashcardTemplateName, fallbackFlashcardTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
