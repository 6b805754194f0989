package jsonrepair

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/talentsift/talentsift/internal/models"
)

// Partial extraction retry parameters: the text is shrunk from the end in
// fixed strides, never below the floor, so the loop always terminates.
const (
	shrinkStride = 50
	shrinkFloor  = 100
)

// danglingKeyRe matches a trailing `"key":` (or a bare `"key"` cut off before
// its colon) with an optional preceding comma. Texts whose final closed string
// is a value never reach this pass: closure repair already decodes those.
var danglingKeyRe = regexp.MustCompile(`,?\s*"(?:[^"\\]|\\.)*"\s*:?\s*$`)

// danglingFragmentRe matches an unterminated string fragment that directly
// follows a comma or an opening delimiter. The delimiter is kept.
var danglingFragmentRe = regexp.MustCompile(`([,{\[])\s*"(?:[^"\\]|\\.)*$`)

// decode parses s as a single top-level JSON object. Anything else (arrays,
// scalars, trailing garbage) is an error.
func decode(s string) (models.Record, error) {
	var rec models.Record
	if err := json.Unmarshal([]byte(s), &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// CloseDelimiters appends the exact number of closing brackets and braces
// needed to balance nesting. Brackets are closed before braces, since arrays
// nest inside objects more often at the point of truncation. Content is
// never altered; already-balanced text is returned unchanged.
func CloseDelimiters(s string) string {
	st := Scan(s)
	if st.BraceDepth <= 0 && st.BracketDepth <= 0 {
		return s
	}
	var b strings.Builder
	b.WriteString(s)
	for i := 0; i < st.BracketDepth; i++ {
		b.WriteByte(']')
	}
	for i := 0; i < st.BraceDepth; i++ {
		b.WriteByte('}')
	}
	return b.String()
}

// RepairTruncation closes an open quoted string, if the scan ends inside one,
// and then balances nesting. This handles responses cut off mid-string.
func RepairTruncation(s string) string {
	if Scan(s).InString {
		s += `"`
	}
	return CloseDelimiters(s)
}

// AggressiveRepair applies textual corrections targeting the failure shapes
// of truncated key/value pairs, then re-applies truncation repair as a final
// closure pass. Only structural closure and removal are performed; content
// inside string values is never edited.
func AggressiveRepair(s string) string {
	s = strings.TrimRight(s, " \t\r\n")

	// Dangling `"key":` with no value.
	if !Scan(s).InString {
		s = danglingKeyRe.ReplaceAllString(s, "")
	}

	// Dangling fragment that is only an unterminated string after a comma
	// or opening delimiter.
	if Scan(s).InString {
		s = danglingFragmentRe.ReplaceAllString(s, "$1")
	}

	// Odd quote count: append a quote only when the text before the last
	// quote ends in a value-starting token, i.e. the quote opened a value.
	if CountUnescapedQuotes(s)%2 == 1 {
		if i := lastUnescapedQuote(s); i >= 0 && endsWithValueToken(s[:i]) {
			s += `"`
		}
	}

	s = stripTrailingCommas(s)

	// A colon at end of text lost its value entirely.
	if t := strings.TrimRight(s, " \t\r\n"); strings.HasSuffix(t, ":") {
		s = t + " null"
	}

	if t := strings.TrimRight(s, " \t\r\n"); strings.HasSuffix(t, ",") {
		s = t[:len(t)-1]
	}

	return RepairTruncation(s)
}

// stripTrailingCommas removes commas that directly precede a closing bracket
// or brace, using the scanner so commas inside string values are untouched.
func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			b.WriteByte(c)
			continue
		}
		if c == '"' {
			inString = true
			b.WriteByte(c)
			continue
		}
		if c == ',' {
			j := i + 1
			for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\r' || s[j] == '\n') {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Repair recovers the best possible record from text assumed to hold one
// top-level object. Four strategies are tried in order of increasing
// aggressiveness, followed by partial extraction as a last resort.
func Repair(s string) (models.Record, error) {
	if rec, err := decode(s); err == nil {
		return rec, nil
	}
	if rec, err := decode(CloseDelimiters(s)); err == nil {
		return rec, nil
	}
	if rec, err := decode(RepairTruncation(s)); err == nil {
		return rec, nil
	}
	if rec, err := decode(AggressiveRepair(s)); err == nil {
		return rec, nil
	}
	return PartialExtract(s)
}

// PartialExtract decodes the longest salvageable prefix of s. It first tries
// the last complete top-level object boundary; failing that, it shrinks the
// text from the end in fixed strides, re-running aggressive repair at each
// length and accepting the first decode that yields at least one key.
func PartialExtract(s string) (models.Record, error) {
	if off := LastBalancedOffset(s); off > 0 {
		if rec, err := decode(s[:off]); err == nil {
			return rec, nil
		}
	}
	for n := len(s) - shrinkStride; n >= shrinkFloor; n -= shrinkStride {
		rec, err := decode(AggressiveRepair(s[:n]))
		if err == nil && len(rec) > 0 {
			return rec, nil
		}
	}
	return nil, models.ErrExtractionFailed
}
