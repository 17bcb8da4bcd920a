package model

import (
	"fmt"
	"strings"
)

// Table represents a grid of text cells organized in rows and columns.
//
// Rows and Columns record the dimensions requested at construction even
// when they are not positive. Cells is sized from the clamped values, so a
// table built with negative dimensions carries no cells but still reports
// the requested counts; validation flags such tables instead of
// construction failing.
type Table struct {
	Rows    int
	Columns int
	Cells   [][]string
}

// NewTable creates a table with the given dimensions. Every cell is
// pre-filled with a "C{row},{col}" placeholder (0-indexed), so each
// position holds addressable content from the start. The grid is never
// resized afterwards; content changes go through SetCell.
func NewTable(rows, columns int) *Table {
	table := &Table{
		Rows:    rows,
		Columns: columns,
	}
	r, c := rows, columns
	if r < 0 {
		r = 0
	}
	if c < 0 {
		c = 0
	}
	table.Cells = make([][]string, r)
	for i := 0; i < r; i++ {
		table.Cells[i] = make([]string, c)
		for j := 0; j < c; j++ {
			table.Cells[i][j] = fmt.Sprintf("C%d,%d", i, j)
		}
	}
	return table
}

func (t *Table) Type() ElementType { return ElementTypeTable }
func (t *Table) Accept(v Visitor)  { v.VisitTable(t) }

// CellAt returns the cell content at the given row and column (0-indexed),
// or the empty string when the position is out of bounds
func (t *Table) CellAt(row, col int) string {
	if row < 0 || row >= len(t.Cells) {
		return ""
	}
	if col < 0 || col >= len(t.Cells[row]) {
		return ""
	}
	return t.Cells[row][col]
}

// SetCell replaces the cell content at the given position
func (t *Table) SetCell(row, col int, text string) error {
	if row < 0 || row >= len(t.Cells) {
		return fmt.Errorf("row index %d out of bounds", row)
	}
	if col < 0 || col >= len(t.Cells[row]) {
		return fmt.Errorf("col index %d out of bounds", col)
	}
	t.Cells[row][col] = text
	return nil
}

// GetText returns the table content as tab-separated rows
func (t *Table) GetText() string {
	var sb strings.Builder
	for _, row := range t.Cells {
		for j, cell := range row {
			sb.WriteString(cell)
			if j < len(row)-1 {
				sb.WriteString("\t")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToMarkdown converts the table to markdown format, treating the first row
// as the header row
func (t *Table) ToMarkdown() string {
	if len(t.Cells) == 0 {
		return ""
	}

	var sb strings.Builder

	// Header row
	for j, cell := range t.Cells[0] {
		sb.WriteString("| ")
		sb.WriteString(strings.ReplaceAll(cell, "\n", " "))
		sb.WriteString(" ")
		if j == len(t.Cells[0])-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	// Separator
	for j := range t.Cells[0] {
		sb.WriteString("|---")
		if j == len(t.Cells[0])-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	// Data rows
	for i := 1; i < len(t.Cells); i++ {
		for j, cell := range t.Cells[i] {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(cell, "\n", " "))
			sb.WriteString(" ")
			if j == len(t.Cells[i])-1 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToCSV converts the table to CSV format
func (t *Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.Cells {
		for j, cell := range row {
			// Escape quotes and wrap in quotes if necessary
			text := cell
			if strings.Contains(text, ",") || strings.Contains(text, "\"") || strings.Contains(text, "\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
