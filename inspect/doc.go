// Package inspect provides visitors that measure a document without
// producing output text.
//
// Every inspector implements [model.Visitor] and accumulates its answer as
// the traversal hands it elements:
//
//	counter := inspect.NewWordCounter()
//	doc.Accept(counter)
//	total := counter.Count()
//
// Inspectors never modify the document, and a traversal always covers every
// element; an inspector that has already reached its final answer still
// sees the rest of the document. Reusing one instance across traversals
// keeps accumulating; use a fresh instance per document for independent
// answers.
//
// # Inspectors
//
//   - [WordCounter] - total word count
//   - [Validator] - structural validity with accumulated findings
//   - [Stats] - per-type element counts and size measurements
package inspect
