package model

// Visitor is implemented by operations that process document elements.
// [Document.Accept] calls exactly one method per element, chosen by the
// element's concrete type.
//
// Visit methods return nothing: an operation accumulates its result
// internally while the traversal runs and exposes it through its own
// accessors afterwards. Operations only read the elements they are handed.
type Visitor interface {
	VisitParagraph(p *Paragraph)
	VisitImage(i *Image)
	VisitTable(t *Table)
}
