package llm

import (
	"context"
	"fmt"
	"time"
)

// Provider selects the generation backend.
type Provider string

const (
	// ProviderOpenAI talks to an OpenAI-compatible chat endpoint.
	ProviderOpenAI Provider = "openai"
	// ProviderGemini uses the Gemini API.
	ProviderGemini Provider = "gemini"
)

// Config selects and configures a backend.
type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// NewClient constructs the configured backend.
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	switch Provider(cfg.Provider) {
	case ProviderOpenAI, "":
		return NewOpenAIClient(OpenAIConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
	case ProviderGemini:
		return NewGeminiClient(ctx, GeminiConfig{
			APIKey: cfg.APIKey,
			Model:  cfg.Model,
		})
	default:
		return nil, fmt.Errorf("unknown llm provider: %s (supported: openai, gemini)", cfg.Provider)
	}
}
