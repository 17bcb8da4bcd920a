package xlsxdoc

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/folio/model"
)

// worksheetXML describes a xl/worksheets/sheet*.xml part. Cell type codes:
// s = shared string, inlineStr = inline string, b = boolean, str = formula
// string result, e = error; numbers carry no type attribute.
type worksheetXML struct {
	XMLName xml.Name `xml:"worksheet"`
	Rows    []rowXML `xml:"sheetData>row"`
}

type rowXML struct {
	Ref   int       `xml:"r,attr"`
	Cells []cellXML `xml:"c"`
}

type cellXML struct {
	Ref    string        `xml:"r,attr"`
	Type   string        `xml:"t,attr"`
	Value  string        `xml:"v"`
	Inline *inlineStrXML `xml:"is"`
}

type inlineStrXML struct {
	Text string `xml:"t"`
}

type sharedStringsXML struct {
	XMLName xml.Name          `xml:"sst"`
	Items   []sharedStringXML `xml:"si"`
}

type sharedStringXML struct {
	Text string   `xml:"t"`
	Runs []runXML `xml:"r"`
}

type runXML struct {
	Text string `xml:"t"`
}

// sharedStrings reads the shared string table. Rich text entries collapse
// to the concatenation of their runs.
func sharedStrings(zr *zip.Reader) []string {
	data, err := readArchiveFile(zr, "xl/sharedStrings.xml")
	if err != nil {
		return nil
	}
	var sst sharedStringsXML
	if err := xml.Unmarshal(data, &sst); err != nil {
		return nil
	}

	strs := make([]string, len(sst.Items))
	for i, item := range sst.Items {
		if item.Text != "" {
			strs[i] = item.Text
			continue
		}
		var sb strings.Builder
		for _, run := range item.Runs {
			sb.WriteString(run.Text)
		}
		strs[i] = sb.String()
	}
	return strs
}

// parseSheet converts one worksheet into a table sized to its occupied
// cell range. Positions without a stored cell are empty, not placeholders.
// A sheet with no cells returns a nil table.
func parseSheet(data []byte, shared []string) (*model.Table, error) {
	var ws worksheetXML
	if err := xml.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("parsing worksheet: %w", err)
	}

	values := make(map[[2]int]string)
	maxRow, maxCol := 0, -1
	rowNum := 0
	for _, row := range ws.Rows {
		// Rows without an r attribute follow their predecessor
		if row.Ref > 0 {
			rowNum = row.Ref
		} else {
			rowNum++
		}
		for _, c := range row.Cells {
			col, _, err := parseCellRef(c.Ref)
			if err != nil {
				continue
			}
			values[[2]int{rowNum - 1, col}] = cellValue(c, shared)
			if col > maxCol {
				maxCol = col
			}
		}
		if rowNum > maxRow {
			maxRow = rowNum
		}
	}
	if maxRow == 0 || maxCol < 0 {
		return nil, nil
	}

	table := model.NewTable(maxRow, maxCol+1)
	for i := 0; i < maxRow; i++ {
		for j := 0; j <= maxCol; j++ {
			table.SetCell(i, j, values[[2]int{i, j}])
		}
	}
	return table, nil
}

// cellValue resolves a cell's display text from its type code.
func cellValue(c cellXML, shared []string) string {
	switch c.Type {
	case "s":
		idx, err := strconv.Atoi(c.Value)
		if err != nil || idx < 0 || idx >= len(shared) {
			return ""
		}
		return shared[idx]
	case "inlineStr":
		if c.Inline != nil {
			return c.Inline.Text
		}
		return ""
	case "b":
		if c.Value == "1" {
			return "TRUE"
		}
		return "FALSE"
	default:
		// Numbers, formula results and error values keep their raw text
		return c.Value
	}
}

// parseCellRef splits a reference like "B3" or "AA10" into 0-indexed
// column and row.
func parseCellRef(ref string) (col, row int, err error) {
	i := 0
	for i < len(ref) && ((ref[i] >= 'A' && ref[i] <= 'Z') || (ref[i] >= 'a' && ref[i] <= 'z')) {
		i++
	}
	if i == 0 || i == len(ref) {
		return 0, 0, fmt.Errorf("invalid cell reference %q", ref)
	}
	for _, ch := range strings.ToUpper(ref[:i]) {
		col = col*26 + int(ch-'A') + 1
	}
	col--
	n, err := strconv.Atoi(ref[i:])
	if err != nil || n < 1 {
		return 0, 0, fmt.Errorf("invalid cell reference %q", ref)
	}
	return col, n - 1, nil
}
