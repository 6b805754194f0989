package jsonrepair

import (
	"errors"
	"reflect"
	"testing"

	"github.com/talentsift/talentsift/internal/models"
)

func TestExtract_WellFormed(t *testing.T) {
	rec, err := Extract(`{"score": 8.5, "verdict": "strong"}`)
	if err != nil {
		t.Fatal(err)
	}
	if rec["verdict"] != "strong" {
		t.Errorf("record = %v", rec)
	}
}

func TestExtract_FencedJSON(t *testing.T) {
	rec, err := Extract("```json\n{\"a\":1}\n```")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(map[string]any(rec), map[string]any{"a": float64(1)}) {
		t.Errorf("record = %v", rec)
	}
}

func TestExtract_TruncatedMidString(t *testing.T) {
	rec, err := Extract(`{"a": 1, "b": "x`)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"a": float64(1), "b": "x"}
	if !reflect.DeepEqual(map[string]any(rec), want) {
		t.Errorf("record = %v, want %v", rec, want)
	}
}

func TestExtract_ProseBeforeObject(t *testing.T) {
	raw := "Sure! Here is the evaluation you asked for:\n\n{\"fit\": \"good\", \"score\": 7}"
	rec, err := Extract(raw)
	if err != nil {
		t.Fatal(err)
	}
	if rec["fit"] != "good" {
		t.Errorf("record = %v", rec)
	}
}

func TestExtract_FenceWithProseAndTruncation(t *testing.T) {
	raw := "```json\n{\"claims\": [{\"text\": \"led a team\", \"chunk\": 2}], \"summary\": \"Expe"
	rec, err := Extract(raw)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := rec["claims"]; !ok {
		t.Errorf("claims key lost: %v", rec)
	}
}

func TestExtract_MarkerBoundary(t *testing.T) {
	// Cut right after a closed value plus comma, with an undecodable tail.
	raw := `{"a": "one", "b": "two", "c": nu`
	rec, err := Extract(raw)
	if err != nil {
		t.Fatal(err)
	}
	if rec["a"] != "one" || rec["b"] != "two" {
		t.Errorf("record = %v", rec)
	}
}

func TestExtract_Unrecoverable(t *testing.T) {
	for _, raw := range []string{"", "the model refused to answer", "[1, 2, 3]"} {
		if _, err := Extract(raw); !errors.Is(err, models.ErrExtractionFailed) {
			t.Errorf("Extract(%q) error = %v, want ErrExtractionFailed", raw, err)
		}
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
		{"```json\n{\"a\":1}", `{"a":1}`}, // closing fence lost to truncation
	}
	for _, tt := range tests {
		if got := StripFences(tt.input); got != tt.want {
			t.Errorf("StripFences(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
