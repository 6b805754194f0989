package vector

import "fmt"

// StoreType selects the vector store backend.
type StoreType string

const (
	// StoreTypeMemory keeps vectors in process memory. Good for tests and
	// one-shot CLI runs.
	StoreTypeMemory StoreType = "memory"
	// StoreTypeSQLite persists vectors in a SQLite database.
	StoreTypeSQLite StoreType = "sqlite"
)

// NewStore creates a vector store of the given type. path is only used by
// the sqlite backend.
func NewStore(storeType string, dimensions int, path string, opts ...SQLiteOption) (Store, error) {
	switch StoreType(storeType) {
	case StoreTypeMemory, "":
		return NewMemoryStore(dimensions)
	case StoreTypeSQLite:
		return NewSQLiteStore(path, dimensions, opts...)
	default:
		return nil, fmt.Errorf("unknown vector store type: %s (supported: memory, sqlite)", storeType)
	}
}
