// Package model defines the composite document representation and the
// visitor contract used to process it.
//
// This package holds the user-facing data structures. All readers produce
// these types, and all operations consume them, making them the primary API
// for working with document content.
//
// # Document Structure
//
// The [Document] type is an ordered collection of elements. Elements are
// appended and never removed or reordered:
//
//	doc := model.NewDocument()
//	doc.AddElement(model.NewParagraph("Quarterly results."))
//	doc.AddElement(model.NewImage("chart.png", 800, 600))
//	doc.AddElement(model.NewTable(3, 4))
//
// # Elements
//
// All content implements the [Element] interface. The concrete types are:
//
//   - [Paragraph] - a block of text with font styling
//   - [Image] - an image referenced by URL with display dimensions
//   - [Table] - a grid of text cells
//
// The set of element kinds is closed; constructors accept any values and
// never fail. Questionable content (an empty image URL, non-positive table
// dimensions) is reported by validation rather than rejected up front.
//
// # Traversal
//
// Operations implement [Visitor] and are dispatched over a document with
// [Document.Accept]:
//
//	exporter := render.NewHTMLExporter()
//	doc.Accept(exporter)
//	html := exporter.Result()
//
// Accept calls exactly one Visit method per element, chosen by the
// element's concrete type, in insertion order, and always covers the full
// document. Adding a new element kind requires extending [Visitor] and
// every operation implementing it; adding a new operation requires no
// changes here.
//
// Traversal only reads elements. Distinct operation instances may traverse
// the same document concurrently, but a single operation instance must not
// be shared between simultaneous traversals.
package model
