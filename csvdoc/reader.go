// Package csvdoc builds documents from CSV content.
package csvdoc

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/folio/model"
)

// Open reads a CSV file into a document. The document title is the file
// name without its extension.
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

// Parse reads CSV into a document holding one table whose grid matches the
// records. Records may vary in length; short rows pad with empty cells. An
// input with no records yields an empty document.
func Parse(r io.Reader) (*model.Document, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	doc := model.NewDocument()
	if len(records) == 0 {
		return doc, nil
	}

	cols := 0
	for _, rec := range records {
		if len(rec) > cols {
			cols = len(rec)
		}
	}

	table := model.NewTable(len(records), cols)
	for i, rec := range records {
		for j := 0; j < cols; j++ {
			text := ""
			if j < len(rec) {
				text = rec[j]
			}
			table.SetCell(i, j, text)
		}
	}
	doc.AddElement(table)
	return doc, nil
}
