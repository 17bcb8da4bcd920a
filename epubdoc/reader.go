// Package epubdoc builds documents from EPUB archives.
package epubdoc

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/folio/htmldoc"
	"github.com/tsawler/folio/model"
)

// Reader-related errors.
var (
	ErrInvalidArchive  = errors.New("epub: invalid or corrupted archive")
	ErrInvalidMimetype = errors.New("epub: mimetype is not application/epub+zip")
	ErrMissingContent  = errors.New("epub: referenced content file not found")
)

// Open parses an EPUB file into a document. Chapters are read in spine
// order and concatenated into a single element sequence. The document
// title comes from the package metadata, falling back to the file name.
func Open(filename string) (*model.Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading file info: %w", err)
	}

	doc, err := Parse(f, info.Size())
	if err != nil {
		return nil, err
	}
	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return doc, nil
}

// Parse parses an EPUB archive from r into a document. DRM-protected
// books are rejected with ErrDRMProtected. Each spine chapter is parsed
// as XHTML, so headings, paragraphs, images, tables and lists all carry
// through to the document.
func Parse(r io.ReaderAt, size int64) (*model.Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, ErrInvalidArchive
	}

	if err := validateMimetype(zr); err != nil {
		return nil, err
	}
	if err := checkForDRM(zr); err != nil {
		return nil, err
	}

	opfPath, err := parseContainer(zr)
	if err != nil {
		return nil, err
	}

	title, hrefs, err := parseOPF(zr, opfPath)
	if err != nil {
		return nil, err
	}

	doc := model.NewDocument()
	doc.Title = title

	loaded := 0
	for _, href := range hrefs {
		content, err := readArchiveFile(zr, href)
		if err != nil {
			// A spine entry pointing at a missing file does not
			// invalidate the rest of the book
			continue
		}
		chapter, err := htmldoc.Parse(bytes.NewReader(content))
		if err != nil {
			continue
		}
		for _, elem := range chapter.Elements() {
			doc.AddElement(elem)
		}
		loaded++
	}
	if loaded == 0 {
		return nil, ErrMissingContent
	}

	return doc, nil
}

// validateMimetype checks the mimetype entry when present. Archives
// missing the entry are tolerated, but a wrong value is rejected.
func validateMimetype(zr *zip.Reader) error {
	data, err := readArchiveFile(zr, "mimetype")
	if err != nil {
		return nil
	}
	if strings.TrimSpace(string(data)) != "application/epub+zip" {
		return ErrInvalidMimetype
	}
	return nil
}

// readArchiveFile reads a single named file from the archive.
func readArchiveFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, ErrMissingContent
}
