// Package models defines core data structures for resume chunks, retrieval
// results, and extracted records.
package models

// SectionType classifies which part of a resume a chunk came from.
type SectionType string

const (
	SectionSummary        SectionType = "summary"
	SectionExperience     SectionType = "experience"
	SectionEducation      SectionType = "education"
	SectionSkills         SectionType = "skills"
	SectionCertifications SectionType = "certifications"
	SectionOther          SectionType = "other"
)

// SectionTypes is the closed set of valid section classifications.
var SectionTypes = []SectionType{
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionCertifications,
	SectionOther,
}

// Valid reports whether s is a member of the closed section-type set.
func (s SectionType) Valid() bool {
	for _, t := range SectionTypes {
		if s == t {
			return true
		}
	}
	return false
}

// Chunk is an ordered, offset-tagged, section-typed segment of a resume.
// Index is zero-based and sequential within one document. StartOffset and
// EndOffset are character positions into the source text (start < end).
type Chunk struct {
	Index       int            `json:"index"`
	Text        string         `json:"text"`
	SectionType SectionType    `json:"section_type"`
	StartOffset int            `json:"start_offset"`
	EndOffset   int            `json:"end_offset"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// RetrievedChunk is a Chunk plus its similarity score for one query.
// Scores are comparable only within a single search.
type RetrievedChunk struct {
	Chunk
	Score   float64 `json:"score"`
	Subject string  `json:"subject"`
}

// Record is a structured value recovered from LLM output. No schema is
// enforced here; callers validate against their own expectations and must
// tolerate missing or null fields even on success.
type Record map[string]any
