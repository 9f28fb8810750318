// Package gemini implements inference.Client on top of Google's Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/at-ishikawa/wortkarte/internal/inference"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

// ErrContentBlocked is returned when the response was stopped by safety filters.
var ErrContentBlocked = errors.New("content blocked by safety filters")

// contentGenerator is the subset of *genai.Models used by Client.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Client connects to the Gemini API on its first request, so a missing API key
// only fails when a flashcard is generated.
type Client struct {
	apiKey string
	model  string

	once    sync.Once
	models  contentGenerator
	initErr error
}

var _ inference.Client = (*Client)(nil)

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey: apiKey,
		model:  model,
	}
}

func (client *Client) contentGenerator(ctx context.Context) (contentGenerator, error) {
	client.once.Do(func() {
		if client.models != nil {
			return
		}
		genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  client.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			client.initErr = fmt.Errorf("genai.NewClient > %w", err)
			return
		}
		client.models = genaiClient.Models
	})
	return client.models, client.initErr
}

// GetModel returns the model name configured for this client
func (client *Client) GetModel() string {
	return client.model
}

// GenerateFlashcard implements the inference.Client interface
func (client *Client) GenerateFlashcard(ctx context.Context, word string) (string, error) {
	prompt, err := inference.FlashcardPrompt(word)
	if err != nil {
		return "", fmt.Errorf("inference.FlashcardPrompt > %w", err)
	}

	models, err := client.contentGenerator(ctx)
	if err != nil {
		return "", err
	}

	response, err := models.GenerateContent(ctx, client.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: inference.SystemPrompt},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("models.GenerateContent(%s) > %w", client.model, err)
	}

	content, err := responseText(response)
	if err != nil {
		return "", err
	}
	slog.Default().Debug("gemini response content",
		"word", word,
		"model", client.model,
		"content", content,
	)
	return content, nil
}

// responseText joins the text parts of the first candidate.
func responseText(response *genai.GenerateContentResponse) (string, error) {
	if response == nil || len(response.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", inference.ErrEmptyResponse)
	}
	candidate := response.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: no content", inference.ErrEmptyResponse)
	}

	var builder strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil {
			continue
		}
		builder.WriteString(part.Text)
	}

	text := strings.TrimSpace(builder.String())
	if text == "" {
		return "", fmt.Errorf("%w: no text parts", inference.ErrEmptyResponse)
	}
	return text, nil
}
