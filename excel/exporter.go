/*
exporter.go - Styled report workbook export

PURPOSE:
  Renders an aggregated report as the consolidated xlsx workbook: one sheet
  per table ("Domingos", "Festivos", "Resumen Total"), each headed by a bold
  title, the detected period, the counting criteria, and - outside the
  Sundays sheet - the considered holidays. The table itself starts at row 5.

LAYOUT:
  A1  Reporte de Asistencias: <sheet>   (bold, 12pt)
  A2  Periodo: <DD-MM-YYYY a DD-MM-YYYY>
  A3  Criterio: ...
  A4  Feriados considerados: ...        (Festivos / Resumen Total only)
  row 5  column headers
  row 6+ one employee per row

  Column widths track the longest value over the first 200 rows, clamped to
  [10, 50] characters.
*/
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/turnos/attendance-engine/summary"
)

// ReportFileName is the suggested download name for the exported workbook.
const ReportFileName = "Reporte_Domingos_y_Feriados.xlsx"

const criteriaLine = "Criterio: Se cuentan todos los turnos excepto 'L' y celdas vacías."

const (
	tableStartRow = 5
	widthSample   = 200
	minColWidth   = 10
	maxColWidth   = 50
)

type sheetDef struct {
	name         string
	headers      []string
	rows         [][]any
	withHolidays bool
}

// WriteReport renders the three report tables as a styled workbook and
// returns the xlsx bytes.
func WriteReport(rep *summary.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return nil, fmt.Errorf("failed to create title style: %w", err)
	}

	sheets := []sheetDef{
		{
			name:    "Domingos",
			headers: append(append([]string{}, rep.IdentityColumns...), summary.ColSundayCount, summary.ColSundayDates),
			rows:    summaryRows(rep.Sundays),
		},
		{
			name:         "Festivos",
			headers:      append(append([]string{}, rep.IdentityColumns...), summary.ColHolidayCount, summary.ColHolidayDates),
			rows:         summaryRows(rep.Holidays),
			withHolidays: true,
		},
		{
			name: "Resumen Total",
			headers: append(append([]string{}, rep.IdentityColumns...),
				summary.ColSundayCount, summary.ColHolidayCount, summary.ColTotalCount,
				summary.ColSundayDates, summary.ColHolidayDates, summary.ColAllDates),
			rows:         totalRows(rep.Totals),
			withHolidays: true,
		},
	}

	for i, def := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), def.name); err != nil {
				return nil, fmt.Errorf("failed to name sheet %q: %w", def.name, err)
			}
		} else if _, err := f.NewSheet(def.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %q: %w", def.name, err)
		}
		if err := writeSheet(f, def, rep, titleStyle); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, def sheetDef, rep *summary.Report, titleStyle int) error {
	f.SetCellValue(def.name, "A1", "Reporte de Asistencias: "+def.name)
	if err := f.SetCellStyle(def.name, "A1", "A1", titleStyle); err != nil {
		return fmt.Errorf("failed to style sheet %q: %w", def.name, err)
	}
	f.SetCellValue(def.name, "A2", "Periodo: "+rep.Period.String())
	f.SetCellValue(def.name, "A3", criteriaLine)
	if def.withHolidays {
		f.SetCellValue(def.name, "A4", "Feriados considerados: "+rep.FormatHolidays())
	}

	widths := make([]int, len(def.headers))
	for c, header := range def.headers {
		if err := setCell(f, def.name, c, tableStartRow, header); err != nil {
			return err
		}
		widths[c] = max(widths[c], len(header))
	}

	for r, row := range def.rows {
		for c, value := range row {
			if err := setCell(f, def.name, c, tableStartRow+1+r, value); err != nil {
				return err
			}
			if r < widthSample {
				widths[c] = max(widths[c], len(fmt.Sprint(value)))
			}
		}
	}

	for c, w := range widths {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return fmt.Errorf("failed to resolve column %d: %w", c+1, err)
		}
		clamped := min(max(minColWidth, w+2), maxColWidth)
		if err := f.SetColWidth(def.name, name, name, float64(clamped)); err != nil {
			return fmt.Errorf("failed to set column width on %q: %w", def.name, err)
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return fmt.Errorf("failed to resolve cell (%d,%d): %w", col+1, row, err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("failed to write cell %s on %q: %w", cell, sheet, err)
	}
	return nil
}

func summaryRows(rows []summary.Row) [][]any {
	out := make([][]any, len(rows))
	for i, r := range rows {
		row := make([]any, 0, len(r.Identity)+2)
		for _, v := range r.Identity {
			row = append(row, v)
		}
		out[i] = append(row, r.Count, r.Dates)
	}
	return out
}

func totalRows(rows []summary.TotalRow) [][]any {
	out := make([][]any, len(rows))
	for i, r := range rows {
		row := make([]any, 0, len(r.Identity)+6)
		for _, v := range r.Identity {
			row = append(row, v)
		}
		out[i] = append(row, r.Sundays, r.Holidays, r.Total, r.SundayDates, r.HolidayDates, r.AllDates)
	}
	return out
}
