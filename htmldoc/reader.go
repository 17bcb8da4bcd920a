// Package htmldoc builds documents from HTML content.
package htmldoc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/folio/model"
)

// Open parses an HTML file into a document. The document title comes from
// the <title> element, falling back to the file name.
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
	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return doc, nil
}

// Parse parses HTML from an io.Reader into a document. Headings become
// paragraphs with level-scaled font sizes, images keep their src, alt and
// declared dimensions, tables keep their full cell grid, and lists flatten
// into a single newline-joined paragraph.
func Parse(r io.Reader) (*model.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	doc := model.NewDocument()
	if title := findElement(root, "title"); title != nil {
		doc.Title = getTextContent(title)
	}

	body := findElement(root, "body")
	if body == nil {
		// No body tag, extract from the root
		body = root
	}
	traverseNode(body, doc)

	return doc, nil
}

// traverseNode walks DOM nodes and appends document elements as it finds
// content.
func traverseNode(n *html.Node, doc *model.Document) {
	if n.Type == html.ElementNode {
		// Skip non-content elements
		if shouldSkipElement(n.Data) {
			return
		}

		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			level := int(n.Data[1] - '0')
			text := getTextContent(n)
			if text != "" {
				p := model.NewParagraph(text)
				p.FontSize = model.HeadingFontSize(level)
				doc.AddElement(p)
			}
			return

		case "p", "div":
			if isBlockContainer(n) {
				// Block container with block children, traverse into it
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					traverseNode(c, doc)
				}
				return
			}
			text := getTextContent(n)
			if text != "" {
				doc.AddElement(model.NewParagraph(text))
			}
			// Images nested in the paragraph still become elements
			collectImages(n, doc)
			return

		case "img":
			if img := parseImage(n); img != nil {
				doc.AddElement(img)
			}
			return

		case "table":
			if table := parseTable(n); table != nil {
				doc.AddElement(table)
			}
			return

		case "ul", "ol":
			text := flattenList(n, n.Data == "ol", 0)
			if text != "" {
				doc.AddElement(model.NewParagraph(text))
			}
			return

		case "pre", "code", "blockquote":
			text := getTextContent(n)
			if text != "" {
				doc.AddElement(model.NewParagraph(text))
			}
			return

		case "nav", "aside":
			// Navigation and sidebar chrome is not document content
			return
		}
	}

	// Default: traverse children
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		traverseNode(c, doc)
	}
}

// parseImage converts an img node. Declared width/height attributes are
// used when present and numeric; anything else leaves the dimension zero.
func parseImage(n *html.Node) *model.Image {
	var src, alt string
	var width, height int
	for _, attr := range n.Attr {
		switch attr.Key {
		case "src":
			src = attr.Val
		case "alt":
			alt = attr.Val
		case "width":
			if v, err := strconv.Atoi(strings.TrimSuffix(attr.Val, "px")); err == nil {
				width = v
			}
		case "height":
			if v, err := strconv.Atoi(strings.TrimSuffix(attr.Val, "px")); err == nil {
				height = v
			}
		}
	}
	if src == "" {
		return nil
	}
	img := model.NewImage(src, width, height)
	img.Alt = alt
	return img
}

// collectImages emits img descendants of a text block as image elements.
func collectImages(n *html.Node, doc *model.Document) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "img" {
			if img := parseImage(c); img != nil {
				doc.AddElement(img)
			}
			continue
		}
		collectImages(c, doc)
	}
}

// parseTable extracts the full cell grid from an HTML table element.
func parseTable(tableNode *html.Node) *model.Table {
	var rows [][]string
	collectTableRows(tableNode, &rows)
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

// collectTableRows walks thead, tbody and direct tr children in order.
func collectTableRows(n *html.Node, rows *[][]string) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "thead", "tbody", "tfoot":
			collectTableRows(c, rows)
		case "tr":
			row := parseTableRow(c)
			if len(row) > 0 {
				*rows = append(*rows, row)
			}
		}
	}
}

// parseTableRow extracts cell text from td and th children.
func parseTableRow(tr *html.Node) []string {
	row := make([]string, 0)
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			row = append(row, getTextContent(c))
		}
	}
	return row
}

// flattenList joins list items into a single text block, one line per
// item, nested lists indented.
func flattenList(n *html.Node, ordered bool, level int) string {
	var lines []string
	num := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		text := getDirectTextContent(c)
		if text != "" {
			num++
			marker := "• "
			if ordered {
				marker = strconv.Itoa(num) + ". "
			}
			lines = append(lines, strings.Repeat("  ", level)+marker+text)
		}
		// Nested lists under this item
		for g := c.FirstChild; g != nil; g = g.NextSibling {
			if g.Type == html.ElementNode && (g.Data == "ul" || g.Data == "ol") {
				if nested := flattenList(g, g.Data == "ol", level+1); nested != "" {
					lines = append(lines, nested)
				}
			}
		}
	}
	return strings.Join(lines, "\n")
}

// shouldSkipElement returns true if the element should be skipped during content extraction.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}

// isBlockContainer returns true if the element has block-level children.
func isBlockContainer(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "div", "p", "ul", "ol", "table", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre", "article", "section":
				return true
			}
		}
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// getTextContent extracts text from a node and its descendants, collapsing
// all whitespace runs to single spaces.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return strings.Join(strings.Fields(result.String()), " ")
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		// Skip script/style content
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "br" {
			result.WriteString(" ")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
	// Keep block boundaries from running words together
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6", "tr":
			result.WriteString(" ")
		}
	}
}

// getDirectTextContent gets text content from a node, excluding nested block elements.
func getDirectTextContent(n *html.Node) string {
	var result strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			result.WriteString(c.Data)
		} else if c.Type == html.ElementNode {
			switch c.Data {
			case "ul", "ol", "div", "p", "table", "blockquote":
				// Block elements are handled separately
			default:
				result.WriteString(getTextContent(c))
			}
		}
	}
	return strings.Join(strings.Fields(result.String()), " ")
}
