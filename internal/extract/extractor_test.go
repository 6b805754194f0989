package extract

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractBytes_plain(t *testing.T) {
	e := NewExtractor()
	content := []byte("Jane Doe\nSenior Engineer")
	got, err := e.ExtractBytes(content, ".txt")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "Jane Doe\nSenior Engineer" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_plainUTF8(t *testing.T) {
	e := NewExtractor()
	content := []byte("caf\xc3\xa9") // valid UTF-8
	got, err := e.ExtractBytes(content, ".md")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "café" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_plainInvalidUTF8(t *testing.T) {
	e := NewExtractor()
	content := []byte("hello\x80world") // invalid UTF-8
	got, err := e.ExtractBytes(content, ".txt")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "hello�world" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_plainNormalizesCRLF(t *testing.T) {
	e := NewExtractor()
	got, err := e.ExtractBytes([]byte("SKILLS\r\n\r\nGo, SQL"), ".txt")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "SKILLS\n\nGo, SQL" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_unknownExtensionTreatedAsPlain(t *testing.T) {
	e := NewExtractor()
	got, err := e.ExtractBytes([]byte("resume body"), ".resume")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "resume body" {
		t.Errorf("got %q", got)
	}
}

// buildDocx assembles a minimal .docx zip with the given document body XML.
func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	ct, err := zw.Create("[Content_Types].xml")
	if err != nil {
		t.Fatal(err)
	}
	ct.Write([]byte(`<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Override PartName="/word/document.xml" ContentType="` + docxMainContentType + `"/></Types>`))
	doc, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	doc.Write([]byte(documentXML))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExtractBytes_docxParagraphsBecomeLines(t *testing.T) {
	docXML := `<w:document><w:body>` +
		`<w:p w:rsidR="00A"><w:r><w:t>EXPERIENCE</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Senior Engi</w:t></w:r><w:r><w:t>neer at Initech</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t xml:space="preserve">Built services in Go.</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	e := NewExtractor()
	got, err := e.ExtractBytes(buildDocx(t, docXML), ".docx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	want := "EXPERIENCE\nSenior Engineer at Initech\nBuilt services in Go."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractBytes_docxNotAZip(t *testing.T) {
	e := NewExtractor()
	if _, err := e.ExtractBytes([]byte("plain text pretending"), ".docx"); err == nil {
		t.Fatal("expected error for non-zip docx")
	}
}

func TestExtract_file(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(path, []byte("SUMMARY\n\nBackend engineer."), 0600); err != nil {
		t.Fatal(err)
	}
	e := NewExtractor()
	got, err := e.Extract(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Backend engineer.") {
		t.Errorf("got %q", got)
	}
}

func TestExtract_missingFile(t *testing.T) {
	e := NewExtractor()
	if _, err := e.Extract(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
