// Package jsonrepair recovers structured records from malformed LLM output.
// It scans text for nesting state, applies escalating structural repairs,
// and orchestrates extraction from fenced or truncated completions.
package jsonrepair

import "strings"

// ScanState is the nesting and string context after scanning a prefix of text.
type ScanState struct {
	BraceDepth   int
	BracketDepth int
	InString     bool
}

// Balanced reports whether all braces and brackets are closed and no string
// is left open.
func (s ScanState) Balanced() bool {
	return s.BraceDepth == 0 && s.BracketDepth == 0 && !s.InString
}

// Scan walks s left to right and returns the final brace depth, bracket
// depth, and whether the end of the text is inside a quoted string. A
// backslash suppresses the special meaning of the following character,
// including a closing quote. Scan has no side effects.
func Scan(s string) ScanState {
	var st ScanState
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if st.InString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				st.InString = false
			}
			continue
		}
		switch c {
		case '"':
			st.InString = true
		case '{':
			st.BraceDepth++
		case '}':
			st.BraceDepth--
		case '[':
			st.BracketDepth++
		case ']':
			st.BracketDepth--
		}
	}
	return st
}

// LastBalancedOffset returns the offset just past the last position at which
// brace depth returns to zero while bracket depth is also zero, i.e. the end
// of the last complete top-level object. Returns -1 if no such position
// exists.
func LastBalancedOffset(s string) int {
	var st ScanState
	escaped := false
	sawObject := false
	last := -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		if st.InString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				st.InString = false
			}
			continue
		}
		switch c {
		case '"':
			st.InString = true
		case '{':
			st.BraceDepth++
			sawObject = true
		case '}':
			st.BraceDepth--
			if sawObject && st.BraceDepth == 0 && st.BracketDepth == 0 {
				last = i + 1
			}
		case '[':
			st.BracketDepth++
		case ']':
			st.BracketDepth--
		}
	}
	return last
}

// CountUnescapedQuotes returns the number of quote characters in s that are
// not preceded by an odd run of backslashes.
func CountUnescapedQuotes(s string) int {
	count := 0
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			count++
		}
	}
	return count
}

// lastUnescapedQuote returns the index of the last unescaped quote in s,
// or -1 if there is none.
func lastUnescapedQuote(s string) int {
	last := -1
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			last = i
		}
	}
	return last
}

// endsWithValueToken reports whether s, ignoring trailing whitespace, ends in
// a token that starts a value position: a colon, an open bracket, or a comma.
func endsWithValueToken(s string) bool {
	t := strings.TrimRight(s, " \t\r\n")
	if t == "" {
		return false
	}
	switch t[len(t)-1] {
	case ':', '[', ',':
		return true
	}
	return false
}
