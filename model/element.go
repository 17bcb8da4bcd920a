package model

// ElementType represents the type of document element
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeParagraph
	ElementTypeImage
	ElementTypeTable
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeParagraph:
		return "Paragraph"
	case ElementTypeImage:
		return "Image"
	case ElementTypeTable:
		return "Table"
	default:
		return "Unknown"
	}
}

// Element is the interface for all document elements. Accept forwards to
// the Visitor method matching the concrete type, so operations never
// inspect element types themselves.
type Element interface {
	Type() ElementType
	Accept(v Visitor)
}

// Defaults applied by NewParagraph.
const (
	DefaultFontFamily = "Arial"
	DefaultFontSize   = 12
)

// HeadingFontSize returns the conventional pixel size for a heading of the
// given level (1-6), following common browser defaults. Out-of-range levels
// get the paragraph default.
func HeadingFontSize(level int) int {
	sizes := [...]int{32, 24, 19, 16, 13, 11}
	if level < 1 || level > len(sizes) {
		return DefaultFontSize
	}
	return sizes[level-1]
}

// Paragraph represents a block of text with font styling
type Paragraph struct {
	Text       string
	FontFamily string
	FontSize   int
}

// NewParagraph creates a paragraph with the default font family and size
func NewParagraph(text string) *Paragraph {
	return &Paragraph{
		Text:       text,
		FontFamily: DefaultFontFamily,
		FontSize:   DefaultFontSize,
	}
}

func (p *Paragraph) Type() ElementType { return ElementTypeParagraph }
func (p *Paragraph) Accept(v Visitor)  { v.VisitParagraph(p) }

// Image represents an image referenced by URL with display dimensions
type Image struct {
	URL    string
	Width  int
	Height int
	// Alt text if available
	Alt string
}

// NewImage creates an image with empty alt text
func NewImage(url string, width, height int) *Image {
	return &Image{URL: url, Width: width, Height: height}
}

func (i *Image) Type() ElementType { return ElementTypeImage }
func (i *Image) Accept(v Visitor)  { v.VisitImage(i) }
