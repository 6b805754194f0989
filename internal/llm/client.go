// Package llm provides text-generation clients used by the screening
// pipeline. Backends are interchangeable behind the Client interface;
// the factory picks one from configuration.
package llm

import "context"

// Client generates text from a prompt. Implementations wrap a specific
// provider API; callers never branch on which one they got.
type Client interface {
	// Generate sends the prompt and returns the model's textual response.
	Generate(ctx context.Context, prompt string) (string, error)

	// ModelName returns the backing model identifier.
	ModelName() string

	// Close releases any underlying connections.
	Close() error
}
