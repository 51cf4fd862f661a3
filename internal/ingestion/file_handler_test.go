package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSupportedExt(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"resume.pdf", true},
		{"resume.PDF", true},
		{"resume.docx", true},
		{"resume.txt", true},
		{"resume.doc", false},
		{"resume.exe", false},
		{"resume", false},
	}

	for _, tt := range tests {
		if got := SupportedExt(tt.filename); got != tt.want {
			t.Errorf("SupportedExt(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestSaveUploadedFileStripsPath(t *testing.T) {
	dir := t.TempDir()
	fh := NewFileHandler(dir)

	path, err := fh.SaveUploadedFile("../../escape.txt", strings.NewReader("content"))
	if err != nil {
		t.Fatalf("SaveUploadedFile() failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("file saved to %q, want inside %q", path, dir)
	}

	data, err := os.ReadFile(filepath.Join(dir, "escape.txt"))
	if err != nil {
		t.Fatalf("saved file not readable: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("saved content = %q, want %q", data, "content")
	}
}

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	for name, data := range map[string]string{
		"b.txt":    "second",
		"a.txt":    "first",
		"notes.md": "ignored",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0755); err != nil {
		t.Fatal(err)
	}

	docs, err := NewFileHandler(dir).LoadDocuments()
	if err != nil {
		t.Fatalf("LoadDocuments() failed: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2 (unsupported files and directories skipped)", len(docs))
	}
	if docs[0].Name != "a.txt" || docs[1].Name != "b.txt" {
		t.Errorf("documents out of filename order: %q, %q", docs[0].Name, docs[1].Name)
	}
	if string(docs[0].Data) != "first" {
		t.Errorf("docs[0].Data = %q, want %q", docs[0].Data, "first")
	}
}

func TestLoadDocumentsMissingDir(t *testing.T) {
	fh := NewFileHandler(filepath.Join(t.TempDir(), "does-not-exist"))
	docs, err := fh.LoadDocuments()
	if err != nil {
		t.Fatalf("LoadDocuments() failed on a missing directory: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("got %d documents from a missing directory, want 0", len(docs))
	}
}

func TestClearUploads(t *testing.T) {
	dir := t.TempDir()
	fh := NewFileHandler(dir)
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := fh.ClearUploads(); err != nil {
		t.Fatalf("ClearUploads() failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("uploads directory gone after ClearUploads: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("uploads directory still has %d entries", len(entries))
	}
}
