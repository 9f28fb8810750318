package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/at-ishikawa/wortkarte/internal/cli"
	"github.com/at-ishikawa/wortkarte/internal/config"
	"github.com/at-ishikawa/wortkarte/internal/flashcard"
	"github.com/at-ishikawa/wortkarte/internal/inference"
	"github.com/at-ishikawa/wortkarte/internal/inference/gemini"
	"github.com/at-ishikawa/wortkarte/internal/inference/openai"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func loadStore() (*config.Config, *flashcard.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := flashcard.Load(cfg.Flashcards.File)
	if err != nil {
		return nil, nil, fmt.Errorf("flashcard.Load(%s) > %w", cfg.Flashcards.File, err)
	}
	return cfg, store, nil
}

// newGenerator builds the configured provider. The returned function releases its connections.
func newGenerator(cfg *config.Config) (inference.Client, func(), error) {
	var client inference.Client
	closeGenerator := func() {}
	switch cfg.Generator.Provider {
	case config.ProviderGemini:
		geminiClient := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model)
		slog.Debug("using gemini provider", "model", geminiClient.GetModel())
		client = geminiClient
	case config.ProviderOpenAI:
		openaiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, uint(cfg.OpenAI.MaxRetryAttempts))
		slog.Debug("using openai provider", "model", openaiClient.GetModel())
		client = openaiClient
		closeGenerator = func() {
			_ = openaiClient.Close()
		}
	default:
		return nil, nil, fmt.Errorf("unsupported generator provider: %s", cfg.Generator.Provider)
	}

	if cfg.Generator.CacheDirectory != "" {
		client = inference.NewFileCache(cfg.Generator.CacheDirectory, client)
	}
	return client, closeGenerator, nil
}

func newFlashcardCLI() (*cli.FlashcardCLI, func(), error) {
	cfg, store, err := loadStore()
	if err != nil {
		return nil, nil, err
	}
	generator, closeGenerator, err := newGenerator(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cli.NewFlashcardCLI(store, generator, rand.New(rand.NewSource(time.Now().UnixNano()))), closeGenerator, nil
}
