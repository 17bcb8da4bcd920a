package render

import (
	"fmt"
	"strings"

	"github.com/tsawler/folio/model"
)

// MarkdownExporter renders elements as Markdown blocks separated by blank
// lines. Paragraphs keep their text as-is, images become inline image
// syntax, and tables become pipe tables with the first row as header.
type MarkdownExporter struct {
	blocks []string
}

// NewMarkdownExporter creates an exporter with an empty output buffer
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{
		blocks: make([]string, 0),
	}
}

func (e *MarkdownExporter) VisitParagraph(p *model.Paragraph) {
	e.blocks = append(e.blocks, p.Text)
}

func (e *MarkdownExporter) VisitImage(i *model.Image) {
	e.blocks = append(e.blocks, fmt.Sprintf("![%s](%s)", i.Alt, i.URL))
}

func (e *MarkdownExporter) VisitTable(t *model.Table) {
	md := strings.TrimRight(t.ToMarkdown(), "\n")
	if md == "" {
		return
	}
	e.blocks = append(e.blocks, md)
}

// Result returns the blocks produced so far joined by blank lines
func (e *MarkdownExporter) Result() string {
	return strings.Join(e.blocks, "\n\n")
}
