package embedding

import (
	"context"
	"fmt"
	"time"
)

// Provider selects the embedding backend.
type Provider string

const (
	// ProviderOpenAI talks to an OpenAI-compatible /embeddings endpoint.
	ProviderOpenAI Provider = "openai"
	// ProviderGemini uses the Gemini API.
	ProviderGemini Provider = "gemini"
	// ProviderMock is a deterministic offline embedder.
	ProviderMock Provider = "mock"
)

// Config selects and configures a backend. One polymorphic Embedder comes
// out; no call site branches on the provider again.
type Config struct {
	Provider   string
	APIKey     string
	BaseURL    string
	Model      string
	Dimensions int
	Timeout    time.Duration
}

// NewEmbedder constructs the configured backend.
func NewEmbedder(ctx context.Context, cfg Config) (Embedder, error) {
	switch Provider(cfg.Provider) {
	case ProviderOpenAI:
		return NewOpenAIEmbedder(OpenAIConfig{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
			Timeout:    cfg.Timeout,
		})
	case ProviderGemini:
		return NewGeminiEmbedder(ctx, GeminiConfig{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		})
	case ProviderMock, "":
		return NewMockEmbedder(cfg.Dimensions), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s (supported: openai, gemini, mock)", cfg.Provider)
	}
}
