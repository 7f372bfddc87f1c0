/*
grid.go - The rectangular attendance grid

PURPOSE:
  In-memory representation of one attendance sheet: ordered column headers
  (identity labels, date headers, stray totals columns) and rows of raw cells
  aligned with those headers. The grid is what the reader collaborator hands
  to the engine; it carries no spreadsheet mechanics.

SHAPE:
  One row per employee, one column per calendar date, plus the fixed identity
  columns. Rows shorter than the header row are padded with blanks on access.

SEE ALSO:
  - detect.go: classifies grid columns into date vs. non-date
  - excel/reader.go: builds grids from xlsx workbooks
*/
package schedule

import "time"

// Column is one grid column: its position, the raw header cell, and the
// trimmed textual label used for identity lookups.
type Column struct {
	Index  int
	Label  string
	Header Cell
}

// DateValue resolves the header to a calendar date. Native date headers
// resolve directly; textual headers must parse day-first.
func (c Column) DateValue() (time.Time, bool) {
	switch c.Header.Kind {
	case KindTime:
		return DateOf(c.Header.Time), true
	case KindString:
		if t, err := ParseDayFirst(c.Header.Str); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Grid is a rectangular attendance sheet.
type Grid struct {
	Columns []Column
	Rows    [][]Cell
}

// NewGrid builds a grid from raw header cells and rows. Column labels come
// from the trimmed string form of each header.
func NewGrid(headers []Cell, rows [][]Cell) *Grid {
	cols := make([]Column, len(headers))
	for i, h := range headers {
		cols[i] = Column{Index: i, Label: NormalizeShift(h), Header: h}
	}
	return &Grid{Columns: cols, Rows: rows}
}

// ColumnIndex returns the position of the column with the given label, or -1.
func (g *Grid) ColumnIndex(label string) int {
	for _, c := range g.Columns {
		if c.Label == label {
			return c.Index
		}
	}
	return -1
}

// CellAt returns the cell at (row, column index), padding short rows with
// blanks.
func (g *Grid) CellAt(row, col int) Cell {
	if row < 0 || row >= len(g.Rows) {
		return BlankCell()
	}
	r := g.Rows[row]
	if col < 0 || col >= len(r) {
		return BlankCell()
	}
	return r[col]
}

// MissingColumns returns the names from want that have no matching column.
// Callers validate identity-column presence with this before aggregating.
func (g *Grid) MissingColumns(want []string) []string {
	var missing []string
	for _, name := range want {
		if g.ColumnIndex(name) < 0 {
			missing = append(missing, name)
		}
	}
	return missing
}
