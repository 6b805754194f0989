package embedding

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/models"
)

// DefaultMaxBatch caps how many texts go to the backend in one request.
// Backends commonly reject oversized batches outright.
const DefaultMaxBatch = 100

// Gateway wraps a backend Embedder with bounded batch splitting and an LRU
// cache for repeated query texts. Callers hand it arbitrarily large inputs;
// it issues as many backend calls as needed and stitches the results back
// together in input order.
type Gateway struct {
	backend  Embedder
	maxBatch int
	cache    *queryCache
	logger   *zap.Logger
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithMaxBatch overrides the per-request batch cap.
func WithMaxBatch(n int) GatewayOption {
	return func(g *Gateway) {
		if n > 0 {
			g.maxBatch = n
		}
	}
}

// WithCache enables an LRU cache of the given capacity for single-text Embed
// calls.
func WithCache(capacity int) GatewayOption {
	return func(g *Gateway) {
		if capacity > 0 {
			g.cache = newQueryCache(capacity)
		}
	}
}

// WithLogger sets a logger for batch debug output.
func WithLogger(l *zap.Logger) GatewayOption {
	return func(g *Gateway) { g.logger = l }
}

// NewGateway wraps backend with batching and optional caching.
func NewGateway(backend Embedder, opts ...GatewayOption) *Gateway {
	g := &Gateway{backend: backend, maxBatch: DefaultMaxBatch}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Embed embeds a single text, consulting the cache first when one is
// configured.
func (g *Gateway) Embed(ctx context.Context, text string) ([]float32, error) {
	key := g.backend.ModelName() + "\x00" + text
	if g.cache != nil {
		if vec, ok := g.cache.get(key); ok {
			return vec, nil
		}
	}
	vec, err := g.backend.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrEmbeddingFailed, err)
	}
	if len(vec) != g.backend.Dimensions() {
		return nil, fmt.Errorf("%w: backend returned dimension %d, expected %d",
			models.ErrEmbeddingFailed, len(vec), g.backend.Dimensions())
	}
	if g.cache != nil {
		g.cache.set(key, vec)
	}
	return vec, nil
}

// EmbedBatch embeds texts, splitting into backend calls of at most the batch
// cap and preserving order: result[i] corresponds to texts[i]. On a batch
// failure the successfully embedded prefix is returned alongside the error,
// so the caller decides whether to continue or abort.
func (g *Gateway) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	results := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += g.maxBatch {
		end := start + g.maxBatch
		if end > len(texts) {
			end = len(texts)
		}
		out, err := g.backend.EmbedBatch(ctx, texts[start:end])
		if err != nil {
			return results, fmt.Errorf("%w: batch %d-%d: %v", models.ErrEmbeddingFailed, start, end, err)
		}
		if len(out) != end-start {
			return results, fmt.Errorf("%w: batch %d-%d: got %d vectors for %d inputs",
				models.ErrEmbeddingFailed, start, end, len(out), end-start)
		}
		for i, vec := range out {
			if len(vec) != g.backend.Dimensions() {
				return results, fmt.Errorf("%w: batch %d-%d: vector %d has dimension %d, expected %d",
					models.ErrEmbeddingFailed, start, end, i, len(vec), g.backend.Dimensions())
			}
		}
		results = append(results, out...)
		if g.logger != nil {
			g.logger.Debug("embedded batch",
				zap.Int("from", start), zap.Int("to", end),
				zap.String("model", g.backend.ModelName()))
		}
	}
	return results, nil
}

// Dimensions returns the backend's embedding dimension.
func (g *Gateway) Dimensions() int {
	return g.backend.Dimensions()
}

// ModelName returns the backend model identifier.
func (g *Gateway) ModelName() string {
	return g.backend.ModelName()
}

// Close closes the backend.
func (g *Gateway) Close() error {
	return g.backend.Close()
}
