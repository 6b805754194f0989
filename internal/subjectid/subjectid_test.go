package subjectid

import (
	"strings"
	"testing"
)

func TestFromPath(t *testing.T) {
	// Deterministic: same path gives same namespace
	id1 := FromPath("/resumes/Jane Doe.pdf")
	id2 := FromPath("/resumes/Jane Doe.pdf")
	if id1 != id2 {
		t.Errorf("same path should give same namespace: %q vs %q", id1, id2)
	}
	if !strings.HasPrefix(id1, prefix) {
		t.Errorf("namespace should have prefix %q: got %q", prefix, id1)
	}
	if !strings.Contains(id1, "jane-doe") {
		t.Errorf("namespace should keep a readable slug: %q", id1)
	}
}

func TestFromPath_differentPaths(t *testing.T) {
	id1 := FromPath("/resumes/jane.pdf")
	id2 := FromPath("/resumes/june.pdf")
	if id1 == id2 {
		t.Errorf("different paths should give different namespaces: %q", id1)
	}
}

func TestFromPath_normalized(t *testing.T) {
	id1 := FromPath("/resumes/jane.pdf")
	id2 := FromPath("/resumes/./jane.pdf")
	if id1 != id2 {
		t.Errorf("cleaned paths should match: %q vs %q", id1, id2)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Jane Doe":        "jane-doe",
		"résumé_2024 (1)": "r-sum-2024-1",
		"---":             "",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
