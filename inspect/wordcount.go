package inspect

import (
	"strings"

	"github.com/tsawler/folio/model"
)

// WordCounter counts words across a document. A word is a maximal run of
// characters between spaces: text splits on the space character only, and
// empty tokens are discarded. Tabs and newlines are not separators, so
// "a\tb" counts as one word. Paragraphs contribute their text, tables
// contribute every cell in row-major order, and images contribute nothing.
type WordCounter struct {
	count int
}

// NewWordCounter creates a counter starting at zero
func NewWordCounter() *WordCounter {
	return &WordCounter{}
}

func (w *WordCounter) VisitParagraph(p *model.Paragraph) {
	w.count += countWords(p.Text)
}

// Images carry no countable text.
func (w *WordCounter) VisitImage(i *model.Image) {}

func (w *WordCounter) VisitTable(t *model.Table) {
	for _, row := range t.Cells {
		for _, cell := range row {
			w.count += countWords(cell)
		}
	}
}

// Count returns the total accumulated so far
func (w *WordCounter) Count() int {
	return w.count
}

// countWords splits on the space character only; tabs and newlines are not
// separators.
func countWords(s string) int {
	n := 0
	for _, tok := range strings.Split(s, " ") {
		if tok != "" {
			n++
		}
	}
	return n
}
