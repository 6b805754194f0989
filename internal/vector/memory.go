package vector

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/talentsift/talentsift/internal/models"
	"github.com/talentsift/talentsift/pkg/utils"
)

// MemoryStore is an in-memory namespaced store using brute-force cosine
// search. Suitable for tests and single-process deployments; per-candidate
// namespaces hold tens of chunks, so brute force is fine.
type MemoryStore struct {
	dimensions int
	namespaces map[string][]memoryRecord
	mu         sync.RWMutex
}

type memoryRecord struct {
	chunk  models.Chunk // text truncated to PreviewLen
	vector []float32    // normalized copy
}

// NewMemoryStore creates an in-memory store for vectors of the given dimension.
func NewMemoryStore(dimensions int) (*MemoryStore, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	return &MemoryStore{
		dimensions: dimensions,
		namespaces: make(map[string][]memoryRecord),
	}, nil
}

// Upsert stores chunks and vectors under namespace, replacing any record
// with the same chunk index.
func (m *MemoryStore) Upsert(ctx context.Context, namespace string, chunks []models.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks and vectors length mismatch: %d vs %d", len(chunks), len(vectors))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	records := m.namespaces[namespace]
	for i, chunk := range chunks {
		if len(vectors[i]) != m.dimensions {
			return fmt.Errorf("vector dimension mismatch: got %d, expected %d", len(vectors[i]), m.dimensions)
		}
		vec := make([]float32, m.dimensions)
		copy(vec, vectors[i])
		utils.NormalizeL2(vec)
		chunk.Text = utils.Truncate(chunk.Text, PreviewLen)
		rec := memoryRecord{chunk: chunk, vector: vec}
		replaced := false
		for j := range records {
			if records[j].chunk.Index == chunk.Index {
				records[j] = rec
				replaced = true
				break
			}
		}
		if !replaced {
			records = append(records, rec)
		}
	}
	m.namespaces[namespace] = records
	return nil
}

// Search returns up to topK records by descending cosine similarity.
func (m *MemoryStore) Search(ctx context.Context, namespace string, query []float32, topK int, sections []models.SectionType) ([]models.RetrievedChunk, error) {
	if len(query) != m.dimensions {
		return nil, fmt.Errorf("query dimension mismatch: got %d, expected %d", len(query), m.dimensions)
	}
	q := make([]float32, m.dimensions)
	copy(q, query)
	utils.NormalizeL2(q)

	m.mu.RLock()
	defer m.mu.RUnlock()
	records := m.namespaces[namespace]
	if topK <= 0 || len(records) == 0 {
		return []models.RetrievedChunk{}, nil
	}
	results := make([]models.RetrievedChunk, 0, len(records))
	for _, rec := range records {
		if !matchesSections(rec.chunk.SectionType, sections) {
			continue
		}
		results = append(results, models.RetrievedChunk{
			Chunk:   rec.chunk,
			Score:   cosineScore(q, rec.vector),
			Subject: namespace,
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

// Exists reports whether namespace holds any records.
func (m *MemoryStore) Exists(ctx context.Context, namespace string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.namespaces[namespace]) > 0, nil
}

// Delete removes all records for namespace.
func (m *MemoryStore) Delete(ctx context.Context, namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.namespaces, namespace)
	return nil
}

// Dimensions returns the configured vector dimension.
func (m *MemoryStore) Dimensions() int {
	return m.dimensions
}

// Close is a no-op for MemoryStore.
func (m *MemoryStore) Close() error {
	return nil
}
