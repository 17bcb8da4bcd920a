package imgmeta

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func TestProbeFormats(t *testing.T) {
	tests := []struct {
		format string
		encode func(io.Writer, image.Image) error
	}{
		{"png", png.Encode},
		{"jpeg", func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, nil) }},
		{"gif", func(w io.Writer, m image.Image) error { return gif.Encode(w, m, nil) }},
		{"bmp", bmp.Encode},
		{"tiff", func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 48))); err != nil {
				t.Fatalf("encoding %s: %v", tt.format, err)
			}

			size, err := Probe(&buf)
			if err != nil {
				t.Fatalf("Probe() error = %v", err)
			}
			if size.Width != 64 || size.Height != 48 {
				t.Errorf("size = %dx%d, want 64x48", size.Width, size.Height)
			}
			if size.Format != tt.format {
				t.Errorf("Format = %q, want %q", size.Format, tt.format)
			}
		})
	}
}

func TestProbeRejectsNonImage(t *testing.T) {
	if _, err := Probe(bytes.NewReader([]byte("plain text, not pixels"))); err == nil {
		t.Error("Probe() expected error for non-image data")
	}
}

func TestProbeFile(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 12, 7))); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "swatch.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	size, err := ProbeFile(path)
	if err != nil {
		t.Fatalf("ProbeFile() error = %v", err)
	}
	if size.Width != 12 || size.Height != 7 {
		t.Errorf("size = %dx%d, want 12x7", size.Width, size.Height)
	}
}

func TestProbeFileNotFound(t *testing.T) {
	if _, err := ProbeFile("/nonexistent/image.png"); err == nil {
		t.Error("ProbeFile() expected error for nonexistent file")
	}
}
