// Package docxdoc builds documents from Word (.docx) content.
package docxdoc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/tsawler/folio/model"
)

// Open parses a .docx file into a document. The document title is the file
// name without its extension.
func Open(filename string) (*model.Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	doc, err := Parse(f, info.Size())
	if err != nil {
		return nil, err
	}
	doc.Title = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return doc, nil
}

// Parse parses docx content with a known size. Body paragraphs become
// paragraph elements, Word heading styles (Heading1-Heading6) scale the
// font size, and tables keep their full cell grid. Embedded media is not
// extracted.
func Parse(r io.ReaderAt, size int64) (*model.Document, error) {
	parsed, err := docx.Parse(r, size)
	if err != nil {
		return nil, fmt.Errorf("parsing docx: %w", err)
	}

	doc := model.NewDocument()
	for _, item := range parsed.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			text := paragraphText(it)
			if text == "" {
				continue
			}
			p := model.NewParagraph(text)
			if level := headingLevel(it); level > 0 {
				p.FontSize = model.HeadingFontSize(level)
			}
			doc.AddElement(p)

		case *docx.Table:
			if table := convertTable(it); table != nil {
				doc.AddElement(table)
			}
		}
	}
	return doc, nil
}

// headingLevel returns 1-6 for Word heading styles ("Heading1",
// "heading 2", ...), 0 for everything else.
func headingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if !strings.HasPrefix(style, "heading") {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(style, "heading"))
	if err != nil || n < 1 || n > 6 {
		return 0
	}
	return n
}

// paragraphText joins the text runs of a paragraph.
func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// convertTable extracts the cell grid from a Word table. Cell text joins
// the cell's paragraphs with newlines.
func convertTable(t *docx.Table) *model.Table {
	var rows [][]string
	for _, tr := range t.TableRows {
		var row []string
		for _, tc := range tr.TableCells {
			var parts []string
			for _, p := range tc.Paragraphs {
				if text := paragraphText(p); text != "" {
					parts = append(parts, text)
				}
			}
			row = append(row, strings.Join(parts, "\n"))
		}
		if len(row) > 0 {
			rows = append(rows, row)
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
