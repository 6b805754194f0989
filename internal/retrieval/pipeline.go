// Package retrieval composes the chunker, embedding gateway, vector store,
// and LLM client into the screening pipeline: ingest a candidate's resume
// once, then answer screening queries with grounded, citation-checked
// structured records.
package retrieval

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/chunker"
	"github.com/talentsift/talentsift/internal/embedding"
	"github.com/talentsift/talentsift/internal/jsonrepair"
	"github.com/talentsift/talentsift/internal/llm"
	"github.com/talentsift/talentsift/internal/models"
	"github.com/talentsift/talentsift/internal/vector"
)

const (
	// DefaultTopK bounds how many chunks ground one screening query.
	DefaultTopK = 10
	// maxFallbackChunks bounds pseudo-retrieved context when no vector
	// store is available.
	maxFallbackChunks = 8
	// DefaultPromptVersion tags results when no version is configured.
	DefaultPromptVersion = "v1"
)

// defaultClaimFields are the record fields whose elements must cite a chunk.
var defaultClaimFields = []string{"strengths", "concerns", "skill_matches"}

// PromptBuilder assembles the final LLM prompt from the screening request
// and the grounding context block. Prompt wording belongs to the caller;
// the pipeline only guarantees what goes into the context block.
type PromptBuilder func(req ScreenRequest, contextBlock, promptVersion string) string

// ScreenRequest describes one screening query against an ingested subject.
type ScreenRequest struct {
	// Query is the screening question or job requirement to evaluate.
	Query string
	// Sections optionally restricts retrieval to the given section types.
	Sections []models.SectionType
	// TopK overrides the pipeline's retrieval depth when positive.
	TopK int
}

// ScreenResult is the outcome of one screening run.
type ScreenResult struct {
	ID            string                  `json:"id"`
	Subject       string                  `json:"subject"`
	Record        models.Record           `json:"record"`
	Chunks        []models.RetrievedChunk `json:"chunks,omitempty"`
	Warnings      []string                `json:"warnings,omitempty"`
	States        []State                 `json:"states"`
	PromptVersion string                  `json:"prompt_version"`
}

// IngestResult reports what happened to one ingested document.
type IngestResult struct {
	Subject    string  `json:"subject"`
	ChunkCount int     `json:"chunk_count"`
	Stored     bool    `json:"stored"`
	States     []State `json:"states"`
}

// Pipeline wires the stages together. The vector store may be nil; the
// pipeline then keeps each subject's chunks in memory and serves them as
// pseudo-retrieved context.
type Pipeline struct {
	chunker       *chunker.Chunker
	embedder      embedding.Embedder
	store         vector.Store
	client        llm.Client
	topK          int
	promptVersion string
	claimFields   []string
	buildPrompt   PromptBuilder
	logger        *zap.Logger

	fallbackMu sync.RWMutex
	fallback   map[string][]models.Chunk
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithTopK sets the default retrieval depth.
func WithTopK(k int) PipelineOption {
	return func(p *Pipeline) {
		if k > 0 {
			p.topK = k
		}
	}
}

// WithPromptVersion tags every result with the given prompt version.
func WithPromptVersion(v string) PipelineOption {
	return func(p *Pipeline) {
		if v != "" {
			p.promptVersion = v
		}
	}
}

// WithClaimFields sets which record fields must carry chunk citations.
func WithClaimFields(fields []string) PipelineOption {
	return func(p *Pipeline) {
		if len(fields) > 0 {
			p.claimFields = fields
		}
	}
}

// WithPromptBuilder replaces the default prompt assembly.
func WithPromptBuilder(b PromptBuilder) PipelineOption {
	return func(p *Pipeline) {
		if b != nil {
			p.buildPrompt = b
		}
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(l *zap.Logger) PipelineOption {
	return func(p *Pipeline) { p.logger = l }
}

// NewPipeline builds a pipeline. store may be nil to run without a vector
// backend; every other dependency is required.
func NewPipeline(c *chunker.Chunker, e embedding.Embedder, store vector.Store, client llm.Client, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		chunker:       c,
		embedder:      e,
		store:         store,
		client:        client,
		topK:          DefaultTopK,
		promptVersion: DefaultPromptVersion,
		claimFields:   defaultClaimFields,
		buildPrompt:   defaultPromptBuilder,
		fallback:      make(map[string][]models.Chunk),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IngestResume chunks, embeds, and stores one subject's resume text. A
// missing or failing vector store degrades to storage-skipped: the chunks
// are kept in memory so screening still has context. An embedding failure
// is fatal for the whole document, since no chunk can be stored without
// its vector.
func (p *Pipeline) IngestResume(ctx context.Context, subject, text string) (*IngestResult, error) {
	result := &IngestResult{Subject: subject}

	chunks, err := p.chunker.Chunk(subject, text)
	if err != nil {
		result.States = append(result.States, StateChunkingFailed)
		return result, err
	}
	result.States = append(result.States, StateChunked)
	result.ChunkCount = len(chunks)

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	vectors, err := p.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return result, fmt.Errorf("embed %d chunks for %s: %w", len(chunks), subject, err)
	}
	result.States = append(result.States, StateEmbedded)

	// The raw chunk list is kept on every ingest, not just when storage is
	// skipped: a store that accepts the upsert can still fail at search
	// time, and the fallback must serve real context then too.
	p.keepFallback(subject, chunks)

	if p.store == nil {
		result.States = append(result.States, StateStorageSkipped)
		return result, nil
	}
	if err := p.store.Upsert(ctx, subject, chunks, vectors); err != nil {
		if p.logger != nil {
			p.logger.Warn("vector upsert failed, storage skipped",
				zap.String("subject", subject), zap.Error(err))
		}
		result.States = append(result.States, StateStorageSkipped)
		return result, nil
	}
	result.Stored = true
	result.States = append(result.States, StateStored)
	return result, nil
}

// Screen embeds the query, retrieves grounding chunks for the subject,
// asks the LLM for a structured evaluation, and repairs its output into a
// record. Retrieval failures degrade to fallback context; extraction
// failure is fatal. Missing citations become warnings, never errors.
func (p *Pipeline) Screen(ctx context.Context, subject string, req ScreenRequest) (*ScreenResult, error) {
	result := &ScreenResult{
		ID:            uuid.NewString(),
		Subject:       subject,
		PromptVersion: p.promptVersion,
	}

	retrieved := p.retrieve(ctx, subject, req)
	result.Chunks = retrieved
	result.States = append(result.States, StateRetrieved)

	prompt := p.buildPrompt(req, contextBlock(retrieved), p.promptVersion)
	raw, err := p.client.Generate(ctx, prompt)
	if err != nil {
		return result, fmt.Errorf("generate evaluation for %s: %w", subject, err)
	}
	result.States = append(result.States, StateGenerated)

	record, err := jsonrepair.Extract(raw)
	if err != nil {
		result.States = append(result.States, StateExtractionFailed)
		return result, fmt.Errorf("extract record for %s: %w", subject, err)
	}
	result.Record = record
	result.States = append(result.States, StateExtracted)

	result.Warnings = checkCitations(record, p.claimFields)
	if len(result.Warnings) == 0 {
		result.States = append(result.States, StateCitationsVerified)
	} else {
		if p.logger != nil {
			p.logger.Warn("record has uncited claims",
				zap.String("subject", subject),
				zap.Int("missing", len(result.Warnings)))
		}
		result.States = append(result.States, StateCitationsWarned)
	}
	return result, nil
}

// DeleteSubject removes a subject's vectors and fallback chunks. Storage
// errors are logged only; removal is best-effort.
func (p *Pipeline) DeleteSubject(ctx context.Context, subject string) {
	p.fallbackMu.Lock()
	delete(p.fallback, subject)
	p.fallbackMu.Unlock()
	if p.store == nil {
		return
	}
	if err := p.store.Delete(ctx, subject); err != nil && p.logger != nil {
		p.logger.Warn("namespace delete failed", zap.String("subject", subject), zap.Error(err))
	}
}

// retrieve returns grounding chunks: a vector search when possible,
// otherwise the subject's raw chunk list bounded to a fixed count. Search
// errors degrade the same way.
func (p *Pipeline) retrieve(ctx context.Context, subject string, req ScreenRequest) []models.RetrievedChunk {
	topK := req.TopK
	if topK <= 0 {
		topK = p.topK
	}
	if p.store != nil {
		queryVec, err := p.embedder.Embed(ctx, req.Query)
		if err == nil {
			results, serr := p.store.Search(ctx, subject, queryVec, topK, req.Sections)
			if serr == nil {
				return results
			}
			if p.logger != nil {
				p.logger.Warn("vector search failed, using fallback context",
					zap.String("subject", subject), zap.Error(serr))
			}
		} else if p.logger != nil {
			p.logger.Warn("query embedding failed, using fallback context",
				zap.String("subject", subject), zap.Error(err))
		}
	}
	return p.fallbackChunks(subject)
}

func (p *Pipeline) keepFallback(subject string, chunks []models.Chunk) {
	p.fallbackMu.Lock()
	defer p.fallbackMu.Unlock()
	p.fallback[subject] = chunks
}

func (p *Pipeline) fallbackChunks(subject string) []models.RetrievedChunk {
	p.fallbackMu.RLock()
	chunks := p.fallback[subject]
	p.fallbackMu.RUnlock()
	if len(chunks) > maxFallbackChunks {
		chunks = chunks[:maxFallbackChunks]
	}
	results := make([]models.RetrievedChunk, 0, len(chunks))
	for _, chunk := range chunks {
		results = append(results, models.RetrievedChunk{Chunk: chunk, Subject: subject})
	}
	return results
}

// contextBlock renders retrieved chunks as a grounding block the LLM can
// cite by chunk index.
func contextBlock(chunks []models.RetrievedChunk) string {
	if len(chunks) == 0 {
		return "(no resume context available)"
	}
	var b strings.Builder
	for i, rc := range chunks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[chunk %d | %s | score %.3f]\n%s",
			rc.Index, rc.SectionType, rc.Score, rc.Text)
	}
	return b.String()
}

func defaultPromptBuilder(req ScreenRequest, contextBlock, promptVersion string) string {
	var b strings.Builder
	b.WriteString("You are screening a candidate's resume against a requirement.\n\n")
	b.WriteString("Requirement:\n")
	b.WriteString(req.Query)
	b.WriteString("\n\nResume excerpts:\n")
	b.WriteString(contextBlock)
	b.WriteString("\n\nRespond with a single JSON object containing: ")
	b.WriteString(`"score" (0-10), "summary" (string), "strengths", "concerns", `)
	b.WriteString(`and "skill_matches" (arrays of {"claim": string, "chunk_index": number}). `)
	b.WriteString("Every claim must cite the chunk_index of the excerpt that supports it. ")
	b.WriteString("Output only the JSON object.")
	return b.String()
}
