package inspect

import (
	"unicode/utf8"

	"github.com/tsawler/folio/model"
)

// Stats accumulates summary measurements over a document: how many
// elements of each kind, and how much text they hold. Word counting
// follows the same space-only rule as [WordCounter].
type Stats struct {
	Paragraphs int
	Images     int
	Tables     int
	TableCells int
	Words      int
	Characters int
}

// NewStats creates an empty stats collector
func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) VisitParagraph(p *model.Paragraph) {
	s.Paragraphs++
	s.Words += countWords(p.Text)
	s.Characters += utf8.RuneCountInString(p.Text)
}

func (s *Stats) VisitImage(i *model.Image) {
	s.Images++
}

func (s *Stats) VisitTable(t *model.Table) {
	s.Tables++
	for _, row := range t.Cells {
		for _, cell := range row {
			s.TableCells++
			s.Words += countWords(cell)
			s.Characters += utf8.RuneCountInString(cell)
		}
	}
}

// ElementCount returns the total number of elements seen
func (s *Stats) ElementCount() int {
	return s.Paragraphs + s.Images + s.Tables
}

// EstimatedTokens approximates the LLM token count for the accumulated
// text using the common words-to-tokens ratio of 1.33.
func (s *Stats) EstimatedTokens() int {
	return int(float64(s.Words) * 1.33)
}
