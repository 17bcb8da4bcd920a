// Package render provides visitors that turn a document into an output
// string.
//
// Every exporter implements [model.Visitor] and accumulates fragments as the
// traversal hands it elements; the assembled output is read back once the
// traversal is done:
//
//	exporter := render.NewHTMLExporter()
//	doc.Accept(exporter)
//	html := exporter.Result()
//
// Exporters never modify the document. Reusing one exporter across several
// traversals keeps appending to its output, which concatenates documents;
// use a fresh instance per document for independent results.
//
// # Exporters
//
//   - [HTMLExporter] - inline-styled HTML fragment
//   - [MarkdownExporter] - Markdown blocks with pipe tables
//   - [TextExporter] - plain text
//
// HTML output inserts element text verbatim. Nothing is escaped: text
// containing markup or quote characters flows straight into the output, so
// the result is only as well-formed as the content. Callers that need
// sanitized HTML must sanitize the content first.
package render
