package odtdoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tsawler/folio/model"
)

// OpenDocument namespaces for the parts of content.xml read here.
const (
	nsOffice = "urn:oasis:names:tc:opendocument:xmlns:office:1.0"
	nsText   = "urn:oasis:names:tc:opendocument:xmlns:text:1.0"
	nsTable  = "urn:oasis:names:tc:opendocument:xmlns:table:1.0"
)

// parseContent walks content.xml in token order so elements keep their
// position in the document body.
func parseContent(data []byte) ([]model.Element, error) {
	d := xml.NewDecoder(bytes.NewReader(data))

	var elems []model.Element
	inBody := false
	sawBody := false

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("odt: malformed content: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == nsOffice && t.Name.Local == "text" {
				inBody = true
				sawBody = true
				continue
			}
			if !inBody {
				continue
			}

			switch {
			case t.Name.Space == nsText && t.Name.Local == "h":
				level := attrInt(t, "outline-level", 1)
				if text := collectText(d, t.Name); text != "" {
					p := model.NewParagraph(text)
					p.FontSize = model.HeadingFontSize(level)
					elems = append(elems, p)
				}
			case t.Name.Space == nsText && t.Name.Local == "p":
				if text := collectText(d, t.Name); text != "" {
					elems = append(elems, model.NewParagraph(text))
				}
			case t.Name.Space == nsText && t.Name.Local == "list":
				if items := collectList(d, t.Name); len(items) > 0 {
					elems = append(elems, model.NewParagraph(strings.Join(items, "\n")))
				}
			case t.Name.Space == nsTable && t.Name.Local == "table":
				if table := collectTable(d, t.Name); table != nil {
					elems = append(elems, table)
				}
			}
		case xml.EndElement:
			if t.Name.Space == nsOffice && t.Name.Local == "text" {
				inBody = false
			}
		}
	}

	if !sawBody {
		return nil, ErrNoBody
	}

	return elems, nil
}

// collectText gathers the character data of a paragraph or heading, consuming
// tokens through the matching end element. Tabs, line breaks, and expanded
// spaces are restored; footnotes and annotations are not part of the running
// text and are dropped.
func collectText(d *xml.Decoder, stop xml.Name) string {
	var sb strings.Builder
	depth := 0

	for {
		tok, err := d.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == nsText {
				switch t.Name.Local {
				case "tab":
					sb.WriteString("\t")
				case "line-break":
					sb.WriteString("\n")
				case "s":
					sb.WriteString(strings.Repeat(" ", attrInt(t, "c", 1)))
				case "note":
					d.Skip()
					continue
				}
			}
			if t.Name.Space == nsOffice && t.Name.Local == "annotation" {
				d.Skip()
				continue
			}
			depth++
		case xml.EndElement:
			if depth == 0 && t.Name == stop {
				return strings.TrimSpace(sb.String())
			}
			depth--
		case xml.CharData:
			sb.Write(t)
		}
	}

	return strings.TrimSpace(sb.String())
}

// collectList gathers the items of a list, one bullet line per item. Nested
// lists are flattened into the same run.
func collectList(d *xml.Decoder, stop xml.Name) []string {
	var items []string

	for {
		tok, err := d.Token()
		if err != nil {
			return items
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Space == nsText && (t.Name.Local == "p" || t.Name.Local == "h"):
				if text := collectText(d, t.Name); text != "" {
					items = append(items, "• "+text)
				}
			case t.Name.Space == nsText && t.Name.Local == "list":
				items = append(items, collectList(d, t.Name)...)
			}
		case xml.EndElement:
			if t.Name == stop {
				return items
			}
		}
	}
}

// collectTable builds a table from table:table-row and table:table-cell
// entries. Returns nil when the table holds no rows.
func collectTable(d *xml.Decoder, stop xml.Name) *model.Table {
	var rows [][]string
	var current []string
	inRow := false

	for {
		tok, err := d.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Space == nsTable && t.Name.Local == "table-row":
				inRow = true
				current = nil
			case t.Name.Space == nsTable && t.Name.Local == "table-cell" && inRow:
				text := collectCell(d, t.Name)
				// Repeated empty cells are column padding, not data.
				repeat := 1
				if text != "" {
					repeat = attrInt(t, "number-columns-repeated", 1)
				}
				for i := 0; i < repeat; i++ {
					current = append(current, text)
				}
			case t.Name.Space == nsTable && t.Name.Local == "covered-table-cell" && inRow:
				d.Skip()
				current = append(current, "")
			}
		case xml.EndElement:
			switch {
			case t.Name.Space == nsTable && t.Name.Local == "table-row":
				rows = append(rows, current)
				inRow = false
			case t.Name == stop:
				return buildTable(rows)
			}
		}
	}

	return buildTable(rows)
}

// collectCell joins the paragraphs of one table cell with newlines.
func collectCell(d *xml.Decoder, stop xml.Name) string {
	var parts []string

	for {
		tok, err := d.Token()
		if err != nil {
			return strings.Join(parts, "\n")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == nsText && (t.Name.Local == "p" || t.Name.Local == "h") {
				if text := collectText(d, t.Name); text != "" {
					parts = append(parts, text)
				}
			}
		case xml.EndElement:
			if t.Name == stop {
				return strings.Join(parts, "\n")
			}
		}
	}
}

// buildTable converts collected rows into a model table, padding short rows
// to the widest row.
func buildTable(rows [][]string) *model.Table {
	maxCols := 0
	for _, row := range rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	if len(rows) == 0 || maxCols == 0 {
		return nil
	}

	table := model.NewTable(len(rows), maxCols)
	for r, row := range rows {
		for c := 0; c < maxCols; c++ {
			text := ""
			if c < len(row) {
				text = row[c]
			}
			table.SetCell(r, c, text)
		}
	}

	return table
}

// attrInt returns the named attribute as a positive integer, or def when the
// attribute is absent or not usable.
func attrInt(start xml.StartElement, name string, def int) int {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			if n, err := strconv.Atoi(a.Value); err == nil && n > 0 {
				return n
			}
		}
	}
	return def
}
