//go:build !ocr

// Package ocr recognizes text in document images, for use as alt text
// and searchable content.
//
// This is the stub implementation used when the "ocr" build tag is not
// set; every operation returns ErrNotEnabled. Rebuild with
//
//	go build -tags ocr
//
// to compile the Tesseract-backed implementation, which needs cgo and a
// Tesseract install on the system.
package ocr

import "errors"

// ErrNotEnabled is returned when recognition is requested but support
// was not compiled in.
var ErrNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client runs text recognition over images. The stub client cannot be
// constructed; New always fails.
type Client struct{}

// New returns ErrNotEnabled.
func New() (*Client, error) {
	return nil, ErrNotEnabled
}

// Close is a no-op. Safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// ImageText returns ErrNotEnabled.
func (c *Client) ImageText(data []byte) (string, error) {
	return "", ErrNotEnabled
}

// SetLanguage returns ErrNotEnabled.
func (c *Client) SetLanguage(lang string) error {
	return ErrNotEnabled
}
