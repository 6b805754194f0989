package models

import "errors"

// Error taxonomy for the screening pipeline. Fatal kinds abort the current
// stage and bubble to the caller; recovered kinds are absorbed and logged.
var (
	// ErrExtractionFailed means no repair strategy produced a decodable
	// record from the LLM output. Fatal.
	ErrExtractionFailed = errors.New("extraction failed: output truncated or malformed")

	// ErrEmbeddingFailed means an embedding backend call failed. Fatal for
	// the affected batch; prior batches are unaffected.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrVectorUnavailable means the vector backend could not be reached.
	// Recovered: store failures degrade to storage-skipped, search failures
	// degrade to empty results.
	ErrVectorUnavailable = errors.New("vector backend unavailable")

	// ErrChunkingFailed means the document could not be segmented. Fatal.
	ErrChunkingFailed = errors.New("chunking failed: empty or unreadable document")
)
