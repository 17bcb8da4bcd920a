//go:build ocr

// Package ocr recognizes text in document images, for use as alt text
// and searchable content.
//
// Recognition runs on the Tesseract engine via gosseract, so it needs
// cgo and a Tesseract install on the system. On macOS:
//
//	brew install tesseract
//
// On Debian and Ubuntu:
//
//	apt-get install tesseract-ocr
//
// This implementation compiles only under the "ocr" build tag. Without
// the tag, the stub implementation answers every call with
// ErrNotEnabled.
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client runs text recognition over images. A Client holds engine
// resources and must be closed after use.
type Client struct {
	client *gosseract.Client
}

// New creates a recognition client with the default language (English).
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases the engine resources. Safe to call on a nil client.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ImageText recognizes the text in image data (PNG, JPEG, TIFF) and
// returns it with surrounding whitespace trimmed.
func (c *Client) ImageText(data []byte) (string, error) {
	if err := c.client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("setting image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognizing text: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// SetLanguage selects the recognition language or languages. Multiple
// languages join with "+", as in "eng+fra".
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}
