// Package imgmeta probes intrinsic image dimensions without decoding
// full pixel data.
package imgmeta

import (
	"fmt"
	"image"
	"io"
	"os"

	// Decoders for the formats documents commonly reference.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Size holds an image's intrinsic pixel dimensions.
type Size struct {
	Width  int
	Height int
	Format string // decoder name: "png", "jpeg", "gif", "bmp", "tiff", "webp"
}

// Probe reads just enough of r to determine the image's dimensions.
func Probe(r io.Reader) (Size, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return Size{}, fmt.Errorf("decoding image header: %w", err)
	}
	return Size{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// ProbeFile probes the image stored at path.
func ProbeFile(path string) (Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return Size{}, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	return Probe(f)
}
