package jsonrepair

import (
	"fmt"
	"strings"

	"github.com/talentsift/talentsift/internal/models"
)

// truncationMarkers are boundaries where LLM output is commonly cut off: a
// closed string value followed by a comma, or a closing delimiter. Tried in
// order; longer markers first so their last occurrence is preferred.
var truncationMarkers = []string{`",`, `"}`, `"]`, `},`, `],`, `}`, `]`}

// maxMarkerTrim bounds how many trailing characters are shaved off before a
// marker while probing for a decodable boundary.
const maxMarkerTrim = 20

// Extract returns the best-effort record recovered from raw LLM output. The
// ordered fallback chain: strip formatting fences, direct decode, repair the
// region from the first object-opening brace, probe known truncation-boundary
// markers, and finally partial extraction. If nothing decodes, the returned
// error wraps models.ErrExtractionFailed.
func Extract(raw string) (models.Record, error) {
	text := StripFences(strings.TrimSpace(raw))

	if rec, err := decode(text); err == nil {
		return rec, nil
	}

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, fmt.Errorf("%w: no object found in %d chars of output", models.ErrExtractionFailed, len(raw))
	}
	region := text[start:]

	if rec, err := decode(region); err == nil {
		return rec, nil
	}
	if rec, err := decode(CloseDelimiters(region)); err == nil {
		return rec, nil
	}
	if rec, err := decode(AggressiveRepair(region)); err == nil {
		return rec, nil
	}

	if rec, ok := extractAtMarkers(region); ok {
		return rec, nil
	}

	if rec, err := PartialExtract(region); err == nil {
		return rec, nil
	}

	return nil, fmt.Errorf("%w: %d chars of output resisted all repair strategies", models.ErrExtractionFailed, len(raw))
}

// extractAtMarkers probes each truncation marker's last occurrence, trimming
// up to maxMarkerTrim trailing characters before the cut and attempting
// closure repair at each length.
func extractAtMarkers(region string) (models.Record, bool) {
	for _, marker := range truncationMarkers {
		pos := strings.LastIndex(region, marker)
		if pos < 0 {
			continue
		}
		boundary := pos + len(marker)
		for trim := 0; trim <= maxMarkerTrim && boundary-trim > 1; trim++ {
			candidate := strings.TrimRight(region[:boundary-trim], " \t\r\n")
			candidate = strings.TrimSuffix(candidate, ",")
			if rec, err := decode(CloseDelimiters(candidate)); err == nil && len(rec) > 0 {
				return rec, true
			}
		}
	}
	return nil, false
}

// StripFences removes a surrounding markdown code fence (``` or ```json) and
// any remaining leading/trailing whitespace. Text without fences is returned
// trimmed but otherwise unchanged.
func StripFences(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = t[3:]
	// Drop the language tag on the opening fence line, if any.
	if nl := strings.IndexByte(t, '\n'); nl >= 0 {
		first := strings.TrimSpace(t[:nl])
		if first == "" || isFenceTag(first) {
			t = t[nl+1:]
		}
	}
	if i := strings.LastIndex(t, "```"); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

// isFenceTag reports whether s looks like a code-fence language tag rather
// than content (short, no JSON structure characters).
func isFenceTag(s string) bool {
	if len(s) > 16 {
		return false
	}
	return !strings.ContainsAny(s, "{}[]\":,")
}
