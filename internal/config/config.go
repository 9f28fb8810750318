package config

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	Flashcards FlashcardsConfig `mapstructure:"flashcards"`
	Generator  GeneratorConfig  `mapstructure:"generator"`
	Templates  TemplatesConfig  `mapstructure:"templates"`
	Outputs    OutputsConfig    `mapstructure:"outputs"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
}

type FlashcardsConfig struct {
	File string `mapstructure:"file" validate:"required,csvfile"`
}

type GeneratorConfig struct {
	Provider       string `mapstructure:"provider" validate:"required,oneof=openai gemini"`
	CacheDirectory string `mapstructure:"cache_directory"`
}

type TemplatesConfig struct {
	MarkdownDirectory string `mapstructure:"markdown_directory"`
}

type OutputsConfig struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

type OpenAIConfig struct {
	APIKey           string `mapstructure:"api_key"`
	Model            string `mapstructure:"model"`
	MaxRetryAttempts int    `mapstructure:"max_retry_attempts" validate:"gte=0"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

func Load(configFile string) (*Config, error) {
	// A .env file is optional; variables already set in the environment win.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/wortkarte")
	}

	v.SetDefault("flashcards.file", "flashcards.csv")
	v.SetDefault("generator.provider", ProviderOpenAI)
	v.SetDefault("generator.cache_directory", "")
	v.SetDefault("templates.markdown_directory", filepath.Join("assets", "templates"))
	v.SetDefault("outputs.directory", "outputs")
	v.SetDefault("openai.model", "gpt-4o")
	v.SetDefault("openai.max_retry_attempts", 0)
	v.SetDefault("gemini.model", "gemini-2.0-flash")

	if err := v.BindEnv("generator.provider", "WORTKARTE_PROVIDER"); err != nil {
		return nil, fmt.Errorf("failed to bind WORTKARTE_PROVIDER environment variable: %w", err)
	}

	// Bind API credentials to environment variables only (not from config file)
	if err := v.BindEnv("openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("openai.model", "OPENAI_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_MODEL environment variable: %w", err)
	}
	if err := v.BindEnv("gemini.api_key", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("gemini.model", "GEMINI_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_MODEL environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
