// Package embedding converts chunk and query text into fixed-dimension
// vectors via a pluggable backend (OpenAI-compatible, Gemini, or mock).
package embedding

import "context"

// Embedder produces vector embeddings for text. The output dimension is
// fixed per configuration and identical regardless of backend.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	ModelName() string
	Close() error
}
