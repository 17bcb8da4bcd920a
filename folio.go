// Package folio provides a fluent API for loading documents from common
// source formats and running operations over them.
//
// Basic usage:
//
//	count, warnings, err := folio.Open("report.html").WordCount()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", folio.FormatWarnings(warnings))
//	}
//
// With options:
//
//	html, _, err := folio.Open("notes.md").
//	    WithTitle("Weekly Notes").
//	    ProbeImageSizes().
//	    HTML()
//
// For direct control over documents and operations, the lower-level
// model, render and inspect packages are also available.
package folio

import (
	"github.com/tsawler/folio/model"
)

// Open prepares the named file for loading and returns a Loader for
// fluent configuration. The source format is detected from the file
// extension, falling back to content sniffing; nothing is read until a
// terminal operation runs.
//
// Example:
//
//	doc, warnings, err := folio.Open("report.html").Document()
func Open(filename string) *Loader {
	return &Loader{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromDocument returns a Loader over an already-built document. This is
// useful for running the fluent operations on documents assembled by
// hand or by a custom reader. The Loader operates on the document
// directly: WithTitle and the image passes modify it in place.
//
// Example:
//
//	doc := model.NewDocument()
//	doc.AddElement(model.NewParagraph("Quarterly summary."))
//	html, _, err := folio.FromDocument(doc).HTML()
func FromDocument(doc *model.Document) *Loader {
	return &Loader{
		doc:     doc,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	size := folio.Must(imgmeta.ProbeFile("chart.png"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustResult is a helper that wraps a terminal operation returning
// (T, []Warning, error) and panics if the error is non-nil. It discards
// warnings and returns just the value. It is intended for use in
// scripts or tests where error handling would be cumbersome.
//
// Example:
//
//	html := folio.MustResult(folio.Open("report.html").HTML())
func MustResult[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
