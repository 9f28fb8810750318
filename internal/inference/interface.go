package inference

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"text/template"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client generates the raw text of a flashcard for a German word.
type Client interface {
	GenerateFlashcard(ctx context.Context, word string) (string, error)
}

const (
	DefaultMaxRetryAttempts = 0

	SystemPrompt = "You are a helpful German language tutor."
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("empty response from the model")

var flashcardPromptTemplate = template.Must(template.New("flashcard").Parse(`
Create a flashcard for the German word '{{ .Word }}'.
Provide:
- A short German explanation (in German, 1-2 sentences).
- Its English translation.
- A simple German example sentence using the word.

Format:
Word: {{ .Word }}
German explanation: ...
English translation: ...
Example sentence: ...
`))

// FlashcardPrompt returns the user prompt asking for a flashcard of word.
func FlashcardPrompt(word string) (string, error) {
	var buf bytes.Buffer
	if err := flashcardPromptTemplate.Execute(&buf, struct{ Word string }{Word: word}); err != nil {
		return "", fmt.Errorf("flashcardPromptTemplate.Execute() > %w", err)
	}
	return buf.String(), nil
}
