package inspect

import (
	"fmt"
	"unicode/utf8"

	"github.com/tsawler/folio/model"
)

// MaxParagraphLength is the rune count at which a paragraph is considered
// too long to be valid.
const MaxParagraphLength = 1000

// Validator checks structural soundness across a document. The verdict
// starts true and is only ever lowered: once any element fails a rule the
// document stays invalid, while the traversal continues over the remaining
// elements so every finding is collected.
//
// Rules:
//   - a paragraph must have non-empty text shorter than
//     [MaxParagraphLength] runes
//   - an image must have a non-empty URL and positive dimensions
//   - a table must have positive row and column counts
//
// Cell content is never examined; an empty or placeholder cell is legal.
type Validator struct {
	valid    bool
	problems []string
}

// NewValidator creates a validator with a passing verdict
func NewValidator() *Validator {
	return &Validator{
		valid:    true,
		problems: make([]string, 0),
	}
}

func (v *Validator) VisitParagraph(p *model.Paragraph) {
	if p.Text == "" {
		v.flag("paragraph has empty text")
		return
	}
	if n := utf8.RuneCountInString(p.Text); n >= MaxParagraphLength {
		v.flag("paragraph text is %d runes, limit is %d", n, MaxParagraphLength)
	}
}

func (v *Validator) VisitImage(i *model.Image) {
	if i.URL == "" {
		v.flag("image has empty URL")
	}
	if i.Width <= 0 || i.Height <= 0 {
		v.flag("image %q has non-positive dimensions %dx%d", i.URL, i.Width, i.Height)
	}
}

func (v *Validator) VisitTable(t *model.Table) {
	if t.Rows <= 0 || t.Columns <= 0 {
		v.flag("table has non-positive dimensions %dx%d", t.Rows, t.Columns)
	}
}

// Valid reports whether every element visited so far passed its rules
func (v *Validator) Valid() bool {
	return v.valid
}

// Problems returns one finding per failed rule, in visit order
func (v *Validator) Problems() []string {
	return v.problems
}

func (v *Validator) flag(format string, args ...any) {
	v.valid = false
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}
