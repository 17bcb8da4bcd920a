// Package xlsxdoc builds documents from XLSX spreadsheets.
package xlsxdoc

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

// Reader-related errors.
var (
	ErrInvalidArchive = errors.New("xlsx: invalid or corrupted archive")
	ErrNoWorkbook     = errors.New("xlsx: missing workbook")
	ErrNoSheets       = errors.New("xlsx: no readable worksheets")
)

// workbookXML describes xl/workbook.xml. The sheet list carries the order
// worksheets appear in; the r:id attribute links each entry to its file
// through the relationships part.
type workbookXML struct {
	XMLName xml.Name      `xml:"workbook"`
	Sheets  []sheetRefXML `xml:"sheets>sheet"`
}

type sheetRefXML struct {
	Name string `xml:"name,attr"`
	RID  string `xml:"id,attr"`
}

type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Relationships []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Target string `xml:"Target,attr"`
}

type corePropsXML struct {
	XMLName xml.Name `xml:"coreProperties"`
	Title   string   `xml:"title"`
}

// Open parses an XLSX file into a document. The document title comes from
// the workbook metadata, falling back to the file name.
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

// Parse parses an XLSX archive from r into a document. Each worksheet
// becomes one table, in workbook order. A workbook with a single sheet
// produces just its table; with several, each table is preceded by a
// heading paragraph carrying the sheet name.
func Parse(r io.ReaderAt, size int64) (*model.Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, ErrInvalidArchive
	}

	wbData, err := readArchiveFile(zr, "xl/workbook.xml")
	if err != nil {
		return nil, ErrNoWorkbook
	}
	var wb workbookXML
	if err := xml.Unmarshal(wbData, &wb); err != nil {
		return nil, ErrNoWorkbook
	}

	rels := sheetTargets(zr)
	shared := sharedStrings(zr)

	doc := model.NewDocument()
	doc.Title = workbookTitle(zr)

	loaded := 0
	for i, ref := range wb.Sheets {
		target := rels[ref.RID]
		if target == "" {
			target = fmt.Sprintf("worksheets/sheet%d.xml", i+1)
		}

		data, err := readArchiveFile(zr, sheetPath(target))
		if err != nil {
			continue
		}
		table, err := parseSheet(data, shared)
		if err != nil {
			continue
		}
		loaded++
		if table == nil {
			// An empty sheet still counts as read
			continue
		}

		if len(wb.Sheets) > 1 && ref.Name != "" {
			heading := model.NewParagraph(ref.Name)
			heading.FontSize = model.HeadingFontSize(2)
			doc.AddElement(heading)
		}
		doc.AddElement(table)
	}
	if loaded == 0 {
		return nil, ErrNoSheets
	}

	return doc, nil
}

// sheetTargets maps relationship IDs to worksheet paths. Workbooks
// without a relationships part fall back to default sheet naming.
func sheetTargets(zr *zip.Reader) map[string]string {
	targets := make(map[string]string)
	data, err := readArchiveFile(zr, "xl/_rels/workbook.xml.rels")
	if err != nil {
		return targets
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return targets
	}
	for _, rel := range rels.Relationships {
		targets[rel.ID] = rel.Target
	}
	return targets
}

// sheetPath normalizes a relationship target to its archive entry name.
func sheetPath(target string) string {
	target = strings.TrimPrefix(target, "/")
	if !strings.HasPrefix(target, "xl/") {
		target = "xl/" + target
	}
	return target
}

// workbookTitle reads the dc:title from the core properties, if present.
func workbookTitle(zr *zip.Reader) string {
	data, err := readArchiveFile(zr, "docProps/core.xml")
	if err != nil {
		return ""
	}
	var props corePropsXML
	if err := xml.Unmarshal(data, &props); err != nil {
		return ""
	}
	return props.Title
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
	return nil, fmt.Errorf("file not found: %s", name)
}
