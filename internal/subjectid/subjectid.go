// Package subjectid derives a stable candidate namespace from a resume file
// path for watched files.
package subjectid

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
)

const prefix = "resume:"

// hashLen keeps the namespace readable while leaving collisions between
// distinct paths practically impossible.
const hashLen = 16

// FromPath returns a stable subject namespace for the given path. The same
// path always yields the same namespace, so re-ingesting a changed resume
// replaces its previous vectors instead of accumulating duplicates. The
// file's base name (without extension) is kept in the namespace for
// log readability.
func FromPath(path string) string {
	normalized := filepath.Clean(path)
	hash := sha256.Sum256([]byte(normalized))
	base := strings.TrimSuffix(filepath.Base(normalized), filepath.Ext(normalized))
	return prefix + slugify(base) + ":" + hex.EncodeToString(hash[:])[:hashLen]
}

// slugify lowercases and replaces runs of non-alphanumerics with a single
// hyphen.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
