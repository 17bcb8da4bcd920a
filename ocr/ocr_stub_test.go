//go:build !ocr

package ocr

import (
	"errors"
	"testing"
)

func TestNewWithoutSupport(t *testing.T) {
	client, err := New()
	if !errors.Is(err, ErrNotEnabled) {
		t.Errorf("New() error = %v, want ErrNotEnabled", err)
	}
	if client != nil {
		t.Error("New() returned a client without recognition support")
	}
}

func TestCloseOnNilClient(t *testing.T) {
	var client *Client
	if err := client.Close(); err != nil {
		t.Errorf("Close() on nil client error = %v", err)
	}
}

func TestImageTextWithoutSupport(t *testing.T) {
	var client Client
	if _, err := client.ImageText([]byte("png bytes")); !errors.Is(err, ErrNotEnabled) {
		t.Errorf("ImageText() error = %v, want ErrNotEnabled", err)
	}
}
