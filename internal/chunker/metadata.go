package chunker

import (
	"regexp"
	"strings"

	"github.com/talentsift/talentsift/internal/models"
)

// Metadata extraction is best-effort: a miss returns nil and never fails the
// chunk. Patterns target the common "Role at Company" and institution/degree
// phrasings; anything else is simply left untagged.

// roleAtEmployerRe matches "Senior Engineer at Initech" style entry lines.
var roleAtEmployerRe = regexp.MustCompile(`(?m)^([^\n|•,]{2,60}?)\s+(?:at|@)\s+([^\n|•(]{2,60})`)

// roleDashEmployerRe matches "Senior Engineer - Initech" style entry lines.
var roleDashEmployerRe = regexp.MustCompile(`(?m)^([^\n|•,–-]{2,60}?)\s+[-–—]\s+([^\n|•(–-]{2,60})`)

// institutionRe matches lines naming a university, college, institute, or school.
var institutionRe = regexp.MustCompile(`(?im)^.*?\b([\w .,&']*(?:university|college|institute|school)[\w .,&']*)`)

// degreeRe matches common degree names and abbreviations.
var degreeRe = regexp.MustCompile(`(?i)\b(b\.?\s?sc\.?|m\.?\s?sc\.?|b\.?\s?a\.?|m\.?\s?a\.?|mba|ph\.?\s?d\.?|bachelor(?: of [a-z ]+)?|master(?: of [a-z ]+)?|doctor(?: of [a-z ]+)?)\b`)

// extractMetadata pulls locally determinable attributes out of a chunk's
// text based on its section type.
func extractMetadata(t models.SectionType, text string) map[string]any {
	switch t {
	case models.SectionExperience:
		return experienceMetadata(text)
	case models.SectionEducation:
		return educationMetadata(text)
	default:
		return nil
	}
}

func experienceMetadata(text string) map[string]any {
	body := skipHeadingLine(text)
	m := roleAtEmployerRe.FindStringSubmatch(body)
	if m == nil {
		m = roleDashEmployerRe.FindStringSubmatch(body)
	}
	if m == nil {
		return nil
	}
	role := strings.TrimSpace(m[1])
	employer := strings.TrimSpace(m[2])
	if role == "" || employer == "" {
		return nil
	}
	return map[string]any{"role": role, "employer": employer}
}

func educationMetadata(text string) map[string]any {
	body := skipHeadingLine(text)
	md := make(map[string]any)
	if m := institutionRe.FindStringSubmatch(body); m != nil {
		if inst := strings.TrimSpace(m[1]); inst != "" {
			md["institution"] = inst
		}
	}
	if m := degreeRe.FindStringSubmatch(body); m != nil {
		md["degree"] = strings.TrimSpace(m[1])
	}
	if len(md) == 0 {
		return nil
	}
	return md
}

// skipHeadingLine drops the first line when it is a section heading so entry
// patterns match against content, not the heading itself.
func skipHeadingLine(text string) string {
	nl := strings.IndexByte(text, '\n')
	if nl < 0 {
		return text
	}
	if _, ok := classifyHeading(text[:nl]); ok {
		return text[nl+1:]
	}
	return text
}
