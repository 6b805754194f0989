package chunker

import (
	"strings"
	"unicode"

	"github.com/talentsift/talentsift/internal/models"
)

// maxHeadingLen: heading lines in resumes are short; longer lines are body text.
const maxHeadingLen = 60

// sectionCue maps lexical cues to a section type. Cues are checked in a fixed
// order so classification is deterministic.
type sectionCue struct {
	sectionType models.SectionType
	words       []string
}

var sectionCues = []sectionCue{
	{models.SectionSummary, []string{"summary", "profile", "objective", "about me"}},
	{models.SectionExperience, []string{"experience", "employment", "work history", "career history"}},
	{models.SectionEducation, []string{"education", "academic background", "qualifications"}},
	{models.SectionSkills, []string{"skills", "technologies", "competencies", "tech stack"}},
	{models.SectionCertifications, []string{"certification", "certificates", "licenses"}},
}

// section is a classified [start, end) range of the source text.
type section struct {
	start, end  int
	sectionType models.SectionType
}

// splitSections walks the text line by line, starting a new section at every
// recognized heading. Text before the first heading becomes an "other"
// section (typically name and contact lines).
func splitSections(text string) []section {
	var sections []section
	secStart := 0
	secType := models.SectionOther

	offset := 0
	for offset < len(text) {
		lineEnd := strings.IndexByte(text[offset:], '\n')
		var next int
		if lineEnd < 0 {
			lineEnd = len(text)
			next = lineEnd
		} else {
			lineEnd += offset
			next = lineEnd + 1
		}
		line := text[offset:lineEnd]

		if t, ok := classifyHeading(line); ok {
			if offset > secStart {
				sections = append(sections, section{secStart, offset, secType})
			}
			secStart = offset
			secType = t
		}
		offset = next
	}
	if secStart < len(text) {
		sections = append(sections, section{secStart, len(text), secType})
	}
	return sections
}

// classifyHeading reports whether line looks like a section heading and, if
// so, which section type it opens. A heading is short, either mostly
// uppercase or colon-terminated, and matches a known cue word. This is
// best-effort categorical metadata, not a guaranteed classification.
func classifyHeading(line string) (models.SectionType, bool) {
	t := strings.TrimSpace(line)
	if t == "" || len(t) > maxHeadingLen {
		return "", false
	}
	if !mostlyUpper(t) && !strings.HasSuffix(t, ":") {
		return "", false
	}
	lower := strings.ToLower(strings.TrimSuffix(t, ":"))
	for _, cue := range sectionCues {
		for _, w := range cue.words {
			if strings.Contains(lower, w) {
				return cue.sectionType, true
			}
		}
	}
	return "", false
}

// mostlyUpper reports whether at least 80% of the letters in s are uppercase.
func mostlyUpper(s string) bool {
	letters, upper := 0, 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 {
		return false
	}
	return upper*5 >= letters*4
}
