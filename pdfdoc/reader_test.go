package pdfdoc

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenNotFound(t *testing.T) {
	if _, err := Open("/nonexistent/file.pdf"); err == nil {
		t.Error("Open() expected error for nonexistent file")
	}
}

func TestOpenRejectsNonPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.pdf")
	if err := os.WriteFile(path, []byte("plain text, not a PDF"), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}

	if _, err := Open(path); err == nil {
		t.Error("Open() expected error for non-PDF content")
	}
}
