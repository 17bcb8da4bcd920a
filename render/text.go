package render

import (
	"strings"

	"github.com/tsawler/folio/model"
)

// TextExporter renders elements as plain text blocks separated by blank
// lines. Paragraphs contribute their text, images contribute their alt text
// when present, and tables contribute tab-separated rows.
type TextExporter struct {
	blocks []string
}

// NewTextExporter creates an exporter with an empty output buffer
func NewTextExporter() *TextExporter {
	return &TextExporter{
		blocks: make([]string, 0),
	}
}

func (e *TextExporter) VisitParagraph(p *model.Paragraph) {
	e.blocks = append(e.blocks, p.Text)
}

func (e *TextExporter) VisitImage(i *model.Image) {
	if i.Alt == "" {
		return
	}
	e.blocks = append(e.blocks, i.Alt)
}

func (e *TextExporter) VisitTable(t *model.Table) {
	text := strings.TrimRight(t.GetText(), "\n")
	if text == "" {
		return
	}
	e.blocks = append(e.blocks, text)
}

// Result returns the blocks produced so far joined by blank lines
func (e *TextExporter) Result() string {
	return strings.Join(e.blocks, "\n\n")
}
