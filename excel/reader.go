/*
reader.go - Attendance workbook reading

PURPOSE:
  Reads an xlsx workbook into a schedule.Grid. This is the boundary where
  spreadsheet mechanics end: past this point the engine only sees typed cells.

TYPING HEURISTIC:
  excelize returns formatted strings. Date headers may arrive either as text
  ("01-01-2026") or as real date cells stored as serial numbers with a date
  number format. A cell whose raw value is a serial number that formats to
  something non-numeric is surfaced as a Time cell; plain numerics become
  Number cells; everything else stays text.

SEE ALSO:
  - exporter.go: writes the styled report workbook
  - schedule/grid.go: the grid the reader produces
*/
package excel

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/turnos/attendance-engine/schedule"
)

// SheetNames lists the sheets in a workbook, in workbook order. Used by the
// sheet-selection step before reading.
func SheetNames(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// ReadGrid reads one sheet into a grid. The first row is the header row;
// every following row is one employee.
func ReadGrid(r io.Reader, sheet string) (*schedule.Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	formatted, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	if len(formatted) == 0 {
		return schedule.NewGrid(nil, nil), nil
	}

	headers := toCells(formatted[0], rowAt(raw, 0))
	rows := make([][]schedule.Cell, 0, len(formatted)-1)
	for i := 1; i < len(formatted); i++ {
		rows = append(rows, toCells(formatted[i], rowAt(raw, i)))
	}
	return schedule.NewGrid(headers, rows), nil
}

func rowAt(rows [][]string, i int) []string {
	if i < len(rows) {
		return rows[i]
	}
	return nil
}

func toCells(formatted, raw []string) []schedule.Cell {
	cells := make([]schedule.Cell, len(formatted))
	for i := range formatted {
		rawVal := ""
		if i < len(raw) {
			rawVal = raw[i]
		}
		cells[i] = toCell(formatted[i], rawVal)
	}
	return cells
}

func toCell(formatted, raw string) schedule.Cell {
	fv := strings.TrimSpace(formatted)
	rv := strings.TrimSpace(raw)
	if fv == "" && rv == "" {
		return schedule.BlankCell()
	}

	// Plain numeric cells keep their numeric identity.
	if n, err := strconv.ParseFloat(fv, 64); err == nil {
		return schedule.NumberCell(n)
	}

	// Date-styled cells: a raw serial number whose formatted form is not
	// numeric is a real date value.
	if rv != "" && rv != fv {
		if serial, err := strconv.ParseFloat(rv, 64); err == nil {
			if t, convErr := excelize.ExcelDateToTime(serial, false); convErr == nil {
				return schedule.TimeCell(t)
			}
		}
	}

	return schedule.StringCell(formatted)
}
