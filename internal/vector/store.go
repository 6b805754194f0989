// Package vector provides namespace-isolated vector storage and similarity
// search over resume chunks.
package vector

import (
	"context"

	"github.com/talentsift/talentsift/internal/models"
)

const (
	// PreviewLen bounds the chunk text cached in record metadata so common
	// consumers avoid a second lookup.
	PreviewLen = 240

	// maxBatchFloats caps the payload of one upsert write (vector dimension
	// times batch count); larger upserts are split internally.
	maxBatchFloats = 256 * 1024
)

// Store stores and searches per-namespace vectors. A namespace isolates one
// candidate's chunks from all others; queries are always scoped to exactly
// one namespace.
type Store interface {
	// Upsert writes chunks and their vectors under namespace. Chunks and
	// vectors correspond by position; every vector must match the store's
	// configured dimension. Writes are batched internally to bound payload
	// size.
	Upsert(ctx context.Context, namespace string, chunks []models.Chunk, vectors [][]float32) error

	// Search returns up to topK chunks by descending similarity score.
	// sections, when non-empty, restricts results to those section types.
	// A namespace with no data yields an empty result, not an error.
	Search(ctx context.Context, namespace string, query []float32, topK int, sections []models.SectionType) ([]models.RetrievedChunk, error)

	// Exists reports whether the namespace holds any vectors.
	Exists(ctx context.Context, namespace string) (bool, error)

	// Delete removes all of a namespace's vectors. Best-effort: callers
	// must not fail their primary operation on a delete error.
	Delete(ctx context.Context, namespace string) error

	// Dimensions returns the configured vector dimension.
	Dimensions() int

	// Close releases resources.
	Close() error
}

// upsertBatchSize returns how many vectors of the given dimension fit in one
// write without exceeding the payload cap.
func upsertBatchSize(dimensions int) int {
	n := maxBatchFloats / dimensions
	if n < 1 {
		return 1
	}
	return n
}

// matchesSections reports whether t passes the optional section filter.
func matchesSections(t models.SectionType, sections []models.SectionType) bool {
	if len(sections) == 0 {
		return true
	}
	for _, s := range sections {
		if s == t {
			return true
		}
	}
	return false
}
