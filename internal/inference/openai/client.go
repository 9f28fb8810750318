package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/at-ishikawa/wortkarte/internal/inference"
	"github.com/avast/retry-go"
	"resty.dev/v3"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o"
)

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
}

var _ inference.Client = (*Client)(nil)

func NewClient(apiKey, model string, retryAttempts uint) *Client {
	return newClient(DefaultBaseURL, apiKey, model, retryAttempts)
}

func newClient(baseURL, apiKey, model string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

func (client Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}
	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}
	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}
	return false
}

// GenerateFlashcard implements the inference.Client interface
func (client *Client) GenerateFlashcard(ctx context.Context, word string) (string, error) {
	var result string
	if err := retry.Do(
		func() error {
			content, err := client.generateFlashcard(ctx, word)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				slog.Default().Info("OpenAI API call failed, retrying",
					"word", word,
					"error", err,
				)
				return err
			}
			result = content
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return "", err
	}
	return result, nil
}

func (client *Client) getRequestBody(word string) (ChatCompletionRequest, error) {
	prompt, err := inference.FlashcardPrompt(word)
	if err != nil {
		return ChatCompletionRequest{}, fmt.Errorf("inference.FlashcardPrompt > %w", err)
	}
	return ChatCompletionRequest{
		Model: client.model,
		Messages: []Message{
			{Role: RoleSystem, Content: inference.SystemPrompt},
			{Role: RoleUser, Content: prompt},
		},
	}, nil
}

func (client *Client) generateFlashcard(ctx context.Context, word string) (string, error) {
	requestBody, err := client.getRequestBody(word)
	if err != nil {
		return "", fmt.Errorf("getRequestBody > %w", err)
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices: %s", inference.ErrEmptyResponse, response.String())
	}

	content := strings.TrimSpace(responseBody.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: %s", inference.ErrEmptyResponse, response.String())
	}
	slog.Default().Debug("openai response content",
		"word", word,
		"model", responseBody.Model,
		"usage", responseBody.Usage,
		"content", content,
	)
	return content, nil
}
