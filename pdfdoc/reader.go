// Package pdfdoc builds documents from PDF content.
package pdfdoc

import (
	"fmt"
	"path/filepath"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/tsawler/folio/model"
)

// Open extracts the text of a PDF file into a document, one paragraph per
// page with whitespace normalized. The document title is the file name
// without its extension. Pages without extractable text are skipped, so a
// scanned PDF with no text layer yields an empty document.
func Open(filename string) (*model.Document, error) {
	f, reader, err := pdflib.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	doc := model.NewDocument()
	doc.Title = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.Join(strings.Fields(text), " ")
		if text == "" {
			continue
		}
		doc.AddElement(model.NewParagraph(text))
	}

	return doc, nil
}
