// Package chunker splits resume text into ordered, offset-tagged, section-typed
// chunks suitable for embedding and retrieval.
package chunker

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/models"
)

const (
	// DefaultMaxChunkSize bounds chunk length in characters; oversized
	// sections are split further on paragraph boundaries.
	DefaultMaxChunkSize = 1500

	// placeholderMaxLen: extraction-error placeholders are short; longer
	// texts are treated as real content even if they mention errors.
	placeholderMaxLen = 160
)

// placeholderMarkers identify extraction-error placeholder strings emitted by
// upstream document readers. Such input is unchunkable.
var placeholderMarkers = []string{
	"could not extract",
	"extraction failed",
	"failed to extract",
	"error reading document",
	"unsupported document format",
}

// Chunker splits a resume into section-based chunks.
type Chunker struct {
	maxChunkSize int
	logger       *zap.Logger
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithLogger sets a logger for debug output (section boundaries, metadata hits).
func WithLogger(l *zap.Logger) Option {
	return func(c *Chunker) { c.logger = l }
}

// New creates a Chunker. maxChunkSize bounds chunk length in characters;
// values <= 0 use DefaultMaxChunkSize.
func New(maxChunkSize int, opts ...Option) *Chunker {
	if maxChunkSize <= 0 {
		maxChunkSize = DefaultMaxChunkSize
	}
	c := &Chunker{maxChunkSize: maxChunkSize}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chunk splits text into ordered chunks. Output is deterministic for
// identical input: same boundaries, same classifications, same metadata.
// Returns ErrChunkingFailed for empty or placeholder input.
func (c *Chunker) Chunk(subject, text string) ([]models.Chunk, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: subject %s: empty document", models.ErrChunkingFailed, subject)
	}
	if isPlaceholder(text) {
		return nil, fmt.Errorf("%w: subject %s: extraction placeholder, not resume content", models.ErrChunkingFailed, subject)
	}

	sections := splitSections(text)
	chunks := make([]models.Chunk, 0, len(sections))
	for _, sec := range sections {
		for _, span := range c.splitOversized(text, sec.start, sec.end) {
			start, end := trimSpan(text, span.start, span.end)
			if start >= end {
				continue
			}
			chunk := models.Chunk{
				Index:       len(chunks),
				Text:        text[start:end],
				SectionType: sec.sectionType,
				StartOffset: start,
				EndOffset:   end,
			}
			chunk.Metadata = extractMetadata(sec.sectionType, chunk.Text)
			chunks = append(chunks, chunk)
		}
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: subject %s: no content after segmentation", models.ErrChunkingFailed, subject)
	}
	if c.logger != nil {
		c.logger.Debug("document chunked",
			zap.String("subject", subject),
			zap.Int("chunks", len(chunks)),
			zap.Int("chars", len(text)))
	}
	return chunks, nil
}

// span is a half-open [start, end) character range into the source text.
type span struct {
	start, end int
}

// splitOversized splits [start, end) on paragraph boundaries when it exceeds
// the max chunk size, packing consecutive paragraphs up to the limit. A single
// paragraph larger than the limit stays whole: offsets must remain exact.
func (c *Chunker) splitOversized(text string, start, end int) []span {
	if end-start <= c.maxChunkSize {
		return []span{{start, end}}
	}
	var spans []span
	cur := start
	for cur < end {
		next := cur
		for next < end {
			boundary := paragraphBoundary(text, next, end)
			if next > cur && boundary-cur > c.maxChunkSize {
				break
			}
			next = boundary
		}
		spans = append(spans, span{cur, next})
		cur = next
	}
	return spans
}

// paragraphBoundary returns the offset just past the next blank-line paragraph
// break at or after from, or end if there is none.
func paragraphBoundary(text string, from, end int) int {
	i := strings.Index(text[from:end], "\n\n")
	if i < 0 {
		return end
	}
	b := from + i + 2
	for b < end && text[b] == '\n' {
		b++
	}
	return b
}

// trimSpan shrinks [start, end) past leading and trailing whitespace. The
// resulting gaps fall only on non-content boundaries.
func trimSpan(text string, start, end int) (int, int) {
	for start < end && isSpace(text[start]) {
		start++
	}
	for end > start && isSpace(text[end-1]) {
		end--
	}
	return start, end
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// isPlaceholder reports whether text is an extraction-error placeholder
// rather than resume content.
func isPlaceholder(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if len(t) > placeholderMaxLen {
		return false
	}
	for _, m := range placeholderMarkers {
		if strings.Contains(t, m) {
			return true
		}
	}
	return false
}
