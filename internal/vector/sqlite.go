package vector

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/models"
	"github.com/talentsift/talentsift/pkg/utils"
)

// SQLiteStore persists namespaced vectors in SQLite. Vectors are stored as
// little-endian float32 blobs; chunk metadata (preview, offsets, section
// type) rides along so search results need no second lookup.
type SQLiteStore struct {
	db         *sql.DB
	dimensions int
	logger     *zap.Logger
}

// SQLiteOption configures a SQLiteStore.
type SQLiteOption func(*SQLiteStore)

// WithLogger sets a logger for degraded-search and batching events.
func WithLogger(l *zap.Logger) SQLiteOption {
	return func(s *SQLiteStore) { s.logger = l }
}

// NewSQLiteStore opens or creates the database at dbPath and initializes the
// schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string, dimensions int, opts ...SQLiteOption) (*SQLiteStore, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	s := &SQLiteStore{db: db, dimensions: dimensions}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS chunk_vectors (
		id TEXT PRIMARY KEY,
		namespace TEXT NOT NULL,
		chunk_index INTEGER NOT NULL,
		section_type TEXT NOT NULL,
		start_offset INTEGER NOT NULL,
		end_offset INTEGER NOT NULL,
		preview TEXT NOT NULL,
		metadata TEXT,
		embedding BLOB NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_chunk_vectors_namespace ON chunk_vectors(namespace);
	`
	_, err := db.Exec(schema)
	return err
}

// recordID keys a row by namespace and chunk index, so re-ingesting a
// candidate replaces their previous vectors.
func recordID(namespace string, chunkIndex int) string {
	return fmt.Sprintf("%s:%d", namespace, chunkIndex)
}

// Upsert writes chunks and vectors under namespace in payload-bounded
// transactions.
func (s *SQLiteStore) Upsert(ctx context.Context, namespace string, chunks []models.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks and vectors length mismatch: %d vs %d", len(chunks), len(vectors))
	}
	for i := range vectors {
		if len(vectors[i]) != s.dimensions {
			return fmt.Errorf("vector dimension mismatch at %d: got %d, expected %d", i, len(vectors[i]), s.dimensions)
		}
	}
	batch := upsertBatchSize(s.dimensions)
	for start := 0; start < len(chunks); start += batch {
		end := start + batch
		if end > len(chunks) {
			end = len(chunks)
		}
		if err := s.upsertBatch(ctx, namespace, chunks[start:end], vectors[start:end]); err != nil {
			return fmt.Errorf("upsert batch %d-%d: %w", start, end, err)
		}
	}
	return nil
}

func (s *SQLiteStore) upsertBatch(ctx context.Context, namespace string, chunks []models.Chunk, vectors [][]float32) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO chunk_vectors
		 (id, namespace, chunk_index, section_type, start_offset, end_offset, preview, metadata, embedding)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()
	for i, chunk := range chunks {
		vec := make([]float32, s.dimensions)
		copy(vec, vectors[i])
		utils.NormalizeL2(vec)
		var metadataJSON []byte
		if chunk.Metadata != nil {
			if metadataJSON, err = json.Marshal(chunk.Metadata); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("marshal chunk %d metadata: %w", chunk.Index, err)
			}
		}
		_, err = stmt.ExecContext(ctx,
			recordID(namespace, chunk.Index), namespace, chunk.Index,
			string(chunk.SectionType), chunk.StartOffset, chunk.EndOffset,
			utils.Truncate(chunk.Text, PreviewLen), string(metadataJSON),
			float32SliceToBytes(vec),
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert chunk %d: %w", chunk.Index, err)
		}
	}
	return tx.Commit()
}

// Search loads the namespace's vectors and scores them in memory by cosine
// similarity. Backend errors degrade to an empty result: retrieval is an
// optimization for downstream generation, not a correctness requirement.
func (s *SQLiteStore) Search(ctx context.Context, namespace string, query []float32, topK int, sections []models.SectionType) ([]models.RetrievedChunk, error) {
	if len(query) != s.dimensions {
		return nil, fmt.Errorf("query dimension mismatch: got %d, expected %d", len(query), s.dimensions)
	}
	if topK <= 0 {
		return []models.RetrievedChunk{}, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT chunk_index, section_type, start_offset, end_offset, preview, metadata, embedding
		 FROM chunk_vectors WHERE namespace = ?`, namespace)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("vector search degraded to empty result", zap.String("namespace", namespace), zap.Error(err))
		}
		return []models.RetrievedChunk{}, nil
	}
	defer rows.Close()

	q := make([]float32, s.dimensions)
	copy(q, query)
	utils.NormalizeL2(q)

	var results []models.RetrievedChunk
	for rows.Next() {
		var chunk models.Chunk
		var sectionType, metadataJSON string
		var blob []byte
		if err := rows.Scan(&chunk.Index, &sectionType, &chunk.StartOffset, &chunk.EndOffset, &chunk.Text, &metadataJSON, &blob); err != nil {
			if s.logger != nil {
				s.logger.Warn("vector search degraded to empty result", zap.String("namespace", namespace), zap.Error(err))
			}
			return []models.RetrievedChunk{}, nil
		}
		chunk.SectionType = models.SectionType(sectionType)
		if metadataJSON != "" {
			_ = json.Unmarshal([]byte(metadataJSON), &chunk.Metadata)
		}
		if !matchesSections(chunk.SectionType, sections) {
			continue
		}
		results = append(results, models.RetrievedChunk{
			Chunk:   chunk,
			Score:   cosineScore(q, bytesToFloat32Slice(blob)),
			Subject: namespace,
		})
	}
	if err := rows.Err(); err != nil {
		if s.logger != nil {
			s.logger.Warn("vector search degraded to empty result", zap.String("namespace", namespace), zap.Error(err))
		}
		return []models.RetrievedChunk{}, nil
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if topK < len(results) {
		results = results[:topK]
	}
	if results == nil {
		results = []models.RetrievedChunk{}
	}
	return results, nil
}

// Exists reports whether namespace holds any vectors.
func (s *SQLiteStore) Exists(ctx context.Context, namespace string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM chunk_vectors WHERE namespace = ? LIMIT 1`, namespace).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes all vectors for namespace. Best-effort by contract.
func (s *SQLiteStore) Delete(ctx context.Context, namespace string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chunk_vectors WHERE namespace = ?`, namespace)
	return err
}

// Dimensions returns the configured vector dimension.
func (s *SQLiteStore) Dimensions() int {
	return s.dimensions
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
