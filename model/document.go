package model

// Document is an ordered collection of elements. Elements are appended and
// never removed or reordered; traversal follows insertion order.
type Document struct {
	// Title is informational only; operations ignore it.
	Title string

	elements []Element
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		elements: make([]Element, 0),
	}
}

// AddElement appends an element to the document
func (d *Document) AddElement(e Element) {
	d.elements = append(d.elements, e)
}

// Accept dispatches the visitor over every element in insertion order. Each
// element is visited exactly once per call, and the traversal always covers
// the full document; an operation that reaches a final answer early still
// sees the remaining elements.
func (d *Document) Accept(v Visitor) {
	for _, e := range d.elements {
		e.Accept(v)
	}
}

// Elements returns the elements in insertion order. The returned slice is
// shared with the document; callers must not modify it.
func (d *Document) Elements() []Element {
	return d.elements
}

// ElementCount returns the number of elements
func (d *Document) ElementCount() int {
	return len(d.elements)
}
