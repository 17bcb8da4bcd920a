// Package textdoc builds documents from plain text content.
package textdoc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/tsawler/folio/model"
)

// Open reads a plain text file into a document. The document title is the
// file name without its extension.
func Open(filename string) (*model.Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, err
	}
	doc.Title = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return doc, nil
}

// Parse reads plain text into a document. Input may be UTF-8 or UTF-16
// with a byte order mark; a UTF-8 BOM is stripped. Blank lines separate
// paragraphs, and hard-wrapped lines within a paragraph re-flow onto one
// line so line wrapping does not change word counts.
func Parse(r io.Reader) (*model.Document, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	doc := model.NewDocument()
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			doc.AddElement(model.NewParagraph(current.String()))
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading text: %w", err)
	}
	flush()

	return doc, nil
}

// ParseString parses an in-memory string.
func ParseString(s string) (*model.Document, error) {
	return Parse(strings.NewReader(s))
}
