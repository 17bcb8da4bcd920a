package inspect

import (
	"strings"
	"testing"

	"github.com/tsawler/folio/model"
)

func TestValidatorEmptyDocument(t *testing.T) {
	validator := NewValidator()
	model.NewDocument().Accept(validator)

	if !validator.Valid() {
		t.Error("Valid() = false for empty document, want true")
	}
	if len(validator.Problems()) != 0 {
		t.Errorf("Problems() = %v, want none", validator.Problems())
	}
}

func TestValidatorParagraph(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"normal text", "fine", true},
		{"empty text", "", false},
		{"just under the limit", strings.Repeat("a", 999), true},
		{"at the limit", strings.Repeat("a", 1000), false},
		{"over the limit", strings.Repeat("a", 1500), false},
		// 999 two-byte runes is 1998 bytes but still under the rune limit.
		{"multibyte runes under the limit", strings.Repeat("é", 999), true},
		{"multibyte runes at the limit", strings.Repeat("é", 1000), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := model.NewDocument()
			doc.AddElement(model.NewParagraph(tt.text))

			validator := NewValidator()
			doc.Accept(validator)

			if got := validator.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidatorImage(t *testing.T) {
	tests := []struct {
		name          string
		url           string
		width, height int
		want          bool
	}{
		{"well formed", "pic.png", 100, 100, true},
		{"empty URL", "", 100, 100, false},
		{"zero width", "pic.png", 0, 100, false},
		{"zero height", "pic.png", 100, 0, false},
		{"negative width", "pic.png", -5, 100, false},
		{"negative height", "pic.png", 100, -5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := model.NewDocument()
			doc.AddElement(model.NewImage(tt.url, tt.width, tt.height))

			validator := NewValidator()
			doc.Accept(validator)

			if got := validator.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidatorTable(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		want       bool
	}{
		{"well formed", 3, 4, true},
		{"single cell", 1, 1, true},
		{"zero rows", 0, 4, false},
		{"zero columns", 3, 0, false},
		{"negative rows", -1, 4, false},
		{"negative columns", 3, -2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := model.NewDocument()
			doc.AddElement(model.NewTable(tt.rows, tt.cols))

			validator := NewValidator()
			doc.Accept(validator)

			if got := validator.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidatorCellContentNotChecked(t *testing.T) {
	// Only table dimensions are validated; emptied cells are legal.
	table := model.NewTable(2, 2)
	table.SetCell(0, 0, "")
	table.SetCell(1, 1, "")

	doc := model.NewDocument()
	doc.AddElement(table)

	validator := NewValidator()
	doc.Accept(validator)

	if !validator.Valid() {
		t.Errorf("Valid() = false, want true: %v", validator.Problems())
	}
}

func TestValidatorVerdictNeverRecovers(t *testing.T) {
	// A valid element after an invalid one must not flip the verdict back.
	doc := model.NewDocument()
	doc.AddElement(model.NewParagraph(""))
	doc.AddElement(model.NewParagraph("perfectly fine"))
	doc.AddElement(model.NewTable(2, 2))

	validator := NewValidator()
	doc.Accept(validator)

	if validator.Valid() {
		t.Error("Valid() = true after an invalid element, want false")
	}
}

func TestValidatorTraversalNeverStopsEarly(t *testing.T) {
	// Findings from elements after the first failure are still collected.
	doc := model.NewDocument()
	doc.AddElement(model.NewParagraph(""))
	doc.AddElement(model.NewParagraph("fine"))
	doc.AddElement(model.NewImage("", 0, 10))

	validator := NewValidator()
	doc.Accept(validator)

	problems := validator.Problems()
	if len(problems) != 3 {
		t.Fatalf("Problems() count = %d, want 3: %v", len(problems), problems)
	}
	if !strings.Contains(problems[0], "paragraph") {
		t.Errorf("problems[0] = %q, want a paragraph finding", problems[0])
	}
	if !strings.Contains(problems[1], "URL") {
		t.Errorf("problems[1] = %q, want a URL finding", problems[1])
	}
	if !strings.Contains(problems[2], "dimensions") {
		t.Errorf("problems[2] = %q, want a dimensions finding", problems[2])
	}
}

func TestValidatorLateInvalidElementDetected(t *testing.T) {
	doc := model.NewDocument()
	doc.AddElement(model.NewParagraph("fine"))
	doc.AddElement(model.NewTable(2, 2))
	doc.AddElement(model.NewImage("pic.png", 100, -1))

	validator := NewValidator()
	doc.Accept(validator)

	if validator.Valid() {
		t.Error("Valid() = true, want false for invalid final element")
	}
}

func TestValidatorReuseKeepsVerdict(t *testing.T) {
	bad := model.NewDocument()
	bad.AddElement(model.NewParagraph(""))
	good := model.NewDocument()
	good.AddElement(model.NewParagraph("fine"))

	validator := NewValidator()
	bad.Accept(validator)
	good.Accept(validator)

	// Traversing a valid document afterwards must not clear the verdict.
	if validator.Valid() {
		t.Error("Valid() = true after reuse on a valid document, want false")
	}
}
