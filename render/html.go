package render

import (
	"fmt"
	"strings"

	"github.com/tsawler/folio/model"
)

// HTMLExporter renders elements as an HTML fragment with inline styles.
//
// Each element produces exactly one fragment, appended in visit order:
//
//	<p style='font-family:Arial;font-size:12px'>text</p>
//	<img src='chart.png' width='800' height='600' alt='' />
//	<table><tr><td>C0,0</td>...</tr>...</table>
//
// Attribute values and text are emitted verbatim, whatever they contain.
type HTMLExporter struct {
	fragments []string
}

// NewHTMLExporter creates an exporter with an empty output buffer
func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{
		fragments: make([]string, 0),
	}
}

func (e *HTMLExporter) VisitParagraph(p *model.Paragraph) {
	e.fragments = append(e.fragments, fmt.Sprintf(
		"<p style='font-family:%s;font-size:%dpx'>%s</p>",
		p.FontFamily, p.FontSize, p.Text))
}

func (e *HTMLExporter) VisitImage(i *model.Image) {
	e.fragments = append(e.fragments, fmt.Sprintf(
		"<img src='%s' width='%d' height='%d' alt='%s' />",
		i.URL, i.Width, i.Height, i.Alt))
}

func (e *HTMLExporter) VisitTable(t *model.Table) {
	var sb strings.Builder
	sb.WriteString("<table>")
	for _, row := range t.Cells {
		sb.WriteString("<tr>")
		for _, cell := range row {
			sb.WriteString("<td>")
			sb.WriteString(cell)
			sb.WriteString("</td>")
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</table>")
	e.fragments = append(e.fragments, sb.String())
}

// Result returns the concatenation of every fragment produced so far
func (e *HTMLExporter) Result() string {
	return strings.Join(e.fragments, "")
}

// Fragments returns the per-element fragments in visit order
func (e *HTMLExporter) Fragments() []string {
	return e.fragments
}
