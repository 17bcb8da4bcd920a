// Package chunk splits documents into retrieval-sized pieces of text
// with contextual metadata, for search indexes and LLM context
// assembly.
//
// Chunking follows document structure: headings open new chunks and
// name the section for everything that follows, tables stay whole, and
// only paragraphs too large for a single chunk are split, at sentence
// boundaries.
package chunk

import (
	"fmt"
	"strings"
)

// Metadata describes a chunk's position and content within its source
// document.
type Metadata struct {
	// DocumentTitle is the title of the source document.
	DocumentTitle string `json:"document_title,omitempty"`

	// Section is the heading the chunk falls under, if any.
	Section string `json:"section,omitempty"`

	// Index is the chunk's position in the document, 0-based.
	Index int `json:"index"`

	// Total is the number of chunks cut from the document.
	Total int `json:"total"`

	// ElementTypes lists the kinds of elements the chunk draws from,
	// in first-seen order.
	ElementTypes []string `json:"element_types,omitempty"`

	// HasTable reports whether the chunk contains table content.
	HasTable bool `json:"has_table,omitempty"`

	// HasImage reports whether the chunk covers an image.
	HasImage bool `json:"has_image,omitempty"`

	// CharCount is the chunk text length in characters.
	CharCount int `json:"char_count"`

	// WordCount counts space-separated words per source block, the
	// same rule the inspect package applies.
	WordCount int `json:"word_count"`

	// EstimatedTokens approximates the LLM token count for the text.
	EstimatedTokens int `json:"estimated_tokens"`
}

// Chunk is one retrieval unit of document text.
type Chunk struct {
	// ID identifies the chunk within its document.
	ID string `json:"id"`

	// Text is the chunk content, blocks joined by blank lines.
	Text string `json:"text"`

	// TextWithContext is Text with the section heading prepended as
	// "[Section]", for embedding alongside its context. A chunk that
	// opens with its own heading carries no prefix.
	TextWithContext string `json:"text_with_context,omitempty"`

	// Metadata describes the chunk.
	Metadata Metadata `json:"metadata"`
}

// contextualText derives TextWithContext from the chunk's text and
// section.
func contextualText(text, section string) string {
	if section == "" || strings.HasPrefix(text, section) {
		return text
	}
	return fmt.Sprintf("[%s]\n\n%s", section, text)
}
