/*
Package summary turns a wide attendance grid into the three report tables.

PURPOSE:
  This package is the aggregation engine: it reshapes the per-date shift grid
  into per-employee worked facts, classifies each worked date as Sunday and/or
  holiday, and aggregates into the Sundays, Holidays and Total tables. It is a
  pure function over in-memory data - no I/O, no logging, no shared state.

KEY TYPES IN THIS FILE:
  - Row / TotalRow: one employee line per output table
  - Report: the three tables plus period, holiday set, and warnings
  - Period: the inclusive [min, max] date range of the sheet

ROSTER SEMANTICS:
  Every identity key seen in the input appears exactly once in every table,
  worked dates or not. A report consumer needs to see the employees with zero
  Sundays, not have them silently vanish.

SEE ALSO:
  - aggregate.go: the two-pass aggregation algorithm
  - schedule: cells, dates, detection, holiday parsing
*/
package summary

import (
	"time"

	"github.com/turnos/attendance-engine/schedule"
)

// =============================================================================
// TABLE COLUMN LABELS - Shared by the exporter and the API layer
// =============================================================================

const (
	ColSundayCount  = "Domingos trabajados"
	ColHolidayCount = "Festivos trabajados"
	ColTotalCount   = "Total (D + F)"
	ColSundayDates  = "Fechas (domingos)"
	ColHolidayDates = "Fechas (festivos)"
	ColAllDates     = "Fechas (todas)"
)

// NoHolidaysPlaceholder is rendered when the user supplied no holidays.
const NoHolidaysPlaceholder = "(ninguno)"

// =============================================================================
// OUTPUT ROWS
// =============================================================================

// Row is one employee line in the Sundays or Holidays table: the identity
// values in column order, the count of matching worked dates, and the sorted
// comma-joined date list.
type Row struct {
	Identity []string
	Count    int
	Dates    string
}

// TotalRow is one employee line in the consolidated table. Total counts each
// distinct date once, even when a date is both a worked Sunday and a worked
// holiday.
type TotalRow struct {
	Identity     []string
	Sundays      int
	Holidays     int
	Total        int
	SundayDates  string
	HolidayDates string
	AllDates     string
}

// =============================================================================
// PERIOD
// =============================================================================

// Period is the inclusive date range observed across the sheet's date columns.
type Period struct {
	Start time.Time
	End   time.Time
}

// String renders the period as "DD-MM-YYYY a DD-MM-YYYY".
func (p Period) String() string {
	return schedule.FormatDate(p.Start) + " a " + schedule.FormatDate(p.End)
}

// =============================================================================
// REPORT
// =============================================================================

// Report is the complete aggregation result handed to renderers and exporters.
type Report struct {
	IdentityColumns []string
	Sundays         []Row
	Holidays        []Row
	Totals          []TotalRow
	Period          Period
	HolidaySet      schedule.DateSet
	Warnings        []schedule.Warning
}

// FormatHolidays renders the report's holiday set for descriptive headers:
// a sorted comma-joined list, or the placeholder when empty.
func (r *Report) FormatHolidays() string {
	if r.HolidaySet.Len() == 0 {
		return NoHolidaysPlaceholder
	}
	return r.HolidaySet.String()
}
