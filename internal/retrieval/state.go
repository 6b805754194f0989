package retrieval

// State names a stage a record passed through during one pipeline run. The
// trace on a result shows exactly which degradations occurred.
type State string

const (
	StateChunked           State = "chunked"
	StateEmbedded          State = "embedded"
	StateStored            State = "stored"
	StateStorageSkipped    State = "storage_skipped"
	StateRetrieved         State = "retrieved"
	StateGenerated         State = "generated"
	StateExtracted         State = "extracted"
	StateCitationsVerified State = "citations_verified"
	StateCitationsWarned   State = "citations_warned"

	// Terminal failure states.
	StateChunkingFailed   State = "chunking_failed"
	StateExtractionFailed State = "extraction_failed"
)
