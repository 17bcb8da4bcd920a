// Package mddoc builds documents from Markdown content.
package mddoc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/tsawler/folio/model"
)

// Open parses a Markdown file into a document. The document title is the
// file name without its extension.
func Open(filename string) (*model.Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, err
	}
	doc.Title = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return doc, nil
}

// Parse parses Markdown from an io.Reader into a document. Headings become
// paragraphs with level-scaled font sizes, pipe tables (GFM) keep their
// cell grid, images keep their destination and alt text with zero
// dimensions (Markdown declares none), and lists flatten into a single
// newline-joined paragraph.
func Parse(r io.Reader) (*model.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	root := md.Parser().Parse(text.NewReader(src))

	doc := model.NewDocument()
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		convertBlock(n, src, doc)
	}
	return doc, nil
}

// convertBlock appends the document elements for one top-level AST block.
func convertBlock(n ast.Node, src []byte, doc *model.Document) {
	switch node := n.(type) {
	case *ast.Heading:
		text := inlineText(node, src)
		if text != "" {
			p := model.NewParagraph(text)
			p.FontSize = model.HeadingFontSize(node.Level)
			doc.AddElement(p)
		}

	case *ast.Paragraph:
		text := inlineText(node, src)
		if text != "" {
			doc.AddElement(model.NewParagraph(text))
		}
		// Images in the paragraph become elements of their own; a
		// paragraph holding only an image contributes just the image.
		collectImages(node, src, doc)

	case *ast.List:
		text := flattenList(node, src, 0)
		if text != "" {
			doc.AddElement(model.NewParagraph(text))
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		text := blockLines(n, src)
		if text != "" {
			doc.AddElement(model.NewParagraph(text))
		}

	case *ast.Blockquote:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			convertBlock(c, src, doc)
		}

	case *east.Table:
		if table := convertTable(node, src); table != nil {
			doc.AddElement(table)
		}
	}
}

// inlineText assembles the text of a node's inline children, collapsing
// whitespace runs to single spaces. Images contribute nothing here.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	inlineTextRecursive(n, src, &buf)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func inlineTextRecursive(n ast.Node, src []byte, buf *bytes.Buffer) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.Image:
			// Handled by collectImages
		default:
			inlineTextRecursive(c, src, buf)
		}
	}
}

// collectImages emits image descendants as image elements. Markdown images
// carry no dimensions, so width and height stay zero for validation or
// probing to deal with.
func collectImages(n ast.Node, src []byte, doc *model.Document) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if img, ok := c.(*ast.Image); ok {
			m := model.NewImage(string(img.Destination), 0, 0)
			m.Alt = string(img.Text(src))
			doc.AddElement(m)
			continue
		}
		collectImages(c, src, doc)
	}
}

// flattenList joins list items into a single text block, one line per
// item, nested lists indented.
func flattenList(list *ast.List, src []byte, level int) string {
	var lines []string
	indent := strings.Repeat("  ", level)
	num := 0
	for c := list.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		num++
		marker := "• "
		if list.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
		}

		var parts []string
		var nested []string
		for g := item.FirstChild(); g != nil; g = g.NextSibling() {
			if sub, ok := g.(*ast.List); ok {
				if s := flattenList(sub, src, level+1); s != "" {
					nested = append(nested, s)
				}
				continue
			}
			if t := inlineText(g, src); t != "" {
				parts = append(parts, t)
			}
		}
		if len(parts) > 0 {
			lines = append(lines, indent+marker+strings.Join(parts, " "))
		}
		lines = append(lines, nested...)
	}
	return strings.Join(lines, "\n")
}

// blockLines returns the raw source lines of a block node, used for code
// blocks whose content is not inline-parsed.
func blockLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return strings.TrimRight(buf.String(), "\n")
}

// convertTable extracts the full cell grid from a GFM pipe table.
func convertTable(node *east.Table, src []byte) *model.Table {
	var rows [][]string
	for sec := node.FirstChild(); sec != nil; sec = sec.NextSibling() {
		switch sec.(type) {
		case *east.TableHeader, *east.TableRow:
			rows = append(rows, tableRowCells(sec, src))
		}
	}
	if len(rows) == 0 {
		return nil
	}

	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	table := model.NewTable(len(rows), cols)
	for i, row := range rows {
		for j := 0; j < cols; j++ {
			text := ""
			if j < len(row) {
				text = row[j]
			}
			table.SetCell(i, j, text)
		}
	}
	return table
}

// tableRowCells extracts cell text from a header or body row.
func tableRowCells(row ast.Node, src []byte) []string {
	var cells []string
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		if cell, ok := c.(*east.TableCell); ok {
			cells = append(cells, inlineText(cell, src))
		}
	}
	return cells
}
