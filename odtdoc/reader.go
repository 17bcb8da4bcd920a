// Package odtdoc reads OpenDocument text files into the document model.
//
// Paragraphs, headings, lists, and tables are carried over in body order.
// Heading levels map onto paragraph font sizes; other styling is not
// preserved.
package odtdoc

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/folio/model"
)

var (
	ErrInvalidArchive  = errors.New("odt: invalid or corrupted archive")
	ErrInvalidMimetype = errors.New("odt: not an OpenDocument text file")
	ErrNoContent       = errors.New("odt: missing content part")
	ErrNoBody          = errors.New("odt: no text body in content")
)

// odtMimetype is the declared media type of an OpenDocument text file.
const odtMimetype = "application/vnd.oasis.opendocument.text"

// metaXML maps the dc:title entry of meta.xml.
type metaXML struct {
	XMLName xml.Name `xml:"document-meta"`
	Title   string   `xml:"meta>title"`
}

// Open reads the ODT file at the given path. If the document declares no
// title, the base filename without extension is used.
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
		base := filepath.Base(filename)
		doc.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return doc, nil
}

// Parse reads an ODT archive from r. A missing mimetype entry is tolerated,
// but a mimetype naming another format is not.
func Parse(r io.ReaderAt, size int64) (*model.Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, ErrInvalidArchive
	}

	if mt, err := readArchiveFile(zr, "mimetype"); err == nil {
		if strings.TrimSpace(string(mt)) != odtMimetype {
			return nil, ErrInvalidMimetype
		}
	}

	content, err := readArchiveFile(zr, "content.xml")
	if err != nil {
		return nil, ErrNoContent
	}

	elems, err := parseContent(content)
	if err != nil {
		return nil, err
	}

	doc := model.NewDocument()
	doc.Title = documentTitle(zr)
	for _, elem := range elems {
		doc.AddElement(elem)
	}

	return doc, nil
}

// documentTitle returns the dc:title from meta.xml, or "" if absent.
func documentTitle(zr *zip.Reader) string {
	data, err := readArchiveFile(zr, "meta.xml")
	if err != nil {
		return ""
	}

	var meta metaXML
	if err := xml.Unmarshal(data, &meta); err != nil {
		return ""
	}

	return strings.TrimSpace(meta.Title)
}

// readArchiveFile returns the contents of the named archive entry.
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
	return nil, fmt.Errorf("odt: missing archive entry %s", name)
}
