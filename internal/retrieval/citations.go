package retrieval

import "fmt"

// citationKeys are accepted names for a claim's chunk reference.
var citationKeys = []string{"chunk_index", "citation"}

// checkCitations verifies that every element of the given claim fields
// carries a chunk reference. It returns one warning per uncited claim;
// fields absent from the record are skipped, since the schema is
// caller-supplied and fields may legitimately be missing.
func checkCitations(record map[string]any, claimFields []string) []string {
	var warnings []string
	for _, field := range claimFields {
		value, ok := record[field]
		if !ok || value == nil {
			continue
		}
		claims, ok := value.([]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: expected a list of claims, got %T", field, value))
			continue
		}
		for i, claim := range claims {
			if !hasCitation(claim) {
				warnings = append(warnings, fmt.Sprintf("%s[%d]: missing chunk citation", field, i))
			}
		}
	}
	return warnings
}

func hasCitation(claim any) bool {
	m, ok := claim.(map[string]any)
	if !ok {
		return false
	}
	for _, key := range citationKeys {
		if v, ok := m[key]; ok && v != nil {
			return true
		}
	}
	return false
}
