/*
aggregate.go - Wide-to-long reshape, classification, and aggregation

PURPOSE:
  The heart of the engine. Takes the grid, the identity columns, the detected
  date columns and the holiday set, and produces the three report tables plus
  the detected period.

ALGORITHM (two passes):
  Pass 1 walks every (employee row, date column) cell, normalizes the shift,
  and records each worked date into the row's Sunday and/or holiday date set.
  It also builds the roster: the ordered, de-duplicated list of identity keys.

  Pass 2 walks the roster and emits one line per employee in each table,
  looking up the date sets with an empty-set default. This left-join against
  the roster is deliberate: group-by-only output would drop employees with
  zero matches.

DUPLICATE KEYS:
  Two rows with the same identity tuple merge: their worked-date sets union.
  The merge is reported as a warning so a data-entry duplicate is visible
  without failing the report.

ERRORS:
  No usable date columns is a data error (user fixes the sheet). A configured
  identity column missing from the grid is an internal error - callers are
  expected to pre-validate presence.
*/
package summary

import (
	"fmt"
	"strings"
	"time"

	"github.com/turnos/attendance-engine/schedule"
)

// identity keys are row tuples joined with an unprintable separator
const keySep = "\x1f"

type resolvedColumn struct {
	col  schedule.Column
	date time.Time
}

// Aggregate produces the three report tables from a grid. dateCols normally
// comes from schedule.DetectDateColumns; holidays from schedule.ParseHolidays.
func Aggregate(grid *schedule.Grid, rules schedule.Rules, dateCols []schedule.Column, holidays schedule.DateSet) (*Report, error) {
	if len(dateCols) == 0 {
		return nil, schedule.NewDataError(schedule.ErrNoDateColumns,
			"no se detectaron columnas de fecha en el archivo; verifica que los encabezados tengan formato de fecha (ej: 01-01-2026)")
	}

	identityIdx := make([]int, len(rules.IdentityColumns))
	for i, name := range rules.IdentityColumns {
		idx := grid.ColumnIndex(name)
		if idx < 0 {
			return nil, fmt.Errorf("identity column %q not present in grid", name)
		}
		identityIdx[i] = idx
	}

	// Resolve headers to dates. Detection already filtered unparseable
	// headers under normal flow; this re-check guards direct callers.
	resolved := make([]resolvedColumn, 0, len(dateCols))
	for _, col := range dateCols {
		if date, ok := col.DateValue(); ok {
			resolved = append(resolved, resolvedColumn{col: col, date: date})
		}
	}
	if len(resolved) == 0 {
		return nil, schedule.NewDataError(schedule.ErrNoParseableDateHeaders,
			"error convirtiendo columnas a fecha; revisa el formato de los encabezados")
	}

	period := Period{Start: resolved[0].date, End: resolved[0].date}
	for _, rc := range resolved[1:] {
		if rc.date.Before(period.Start) {
			period.Start = rc.date
		}
		if rc.date.After(period.End) {
			period.End = rc.date
		}
	}

	// Pass 1: reshape and classify into per-key date sets.
	var (
		rosterOrder []string
		rosterRows  = make(map[string][]string)
		sundaySets  = make(map[string]schedule.DateSet)
		holidaySets = make(map[string]schedule.DateSet)
		warnings    []schedule.Warning
	)

	for rowIdx := range grid.Rows {
		identity := make([]string, len(identityIdx))
		for i, colIdx := range identityIdx {
			identity[i] = schedule.NormalizeShift(grid.CellAt(rowIdx, colIdx))
		}
		key := strings.Join(identity, keySep)

		if _, seen := rosterRows[key]; !seen {
			rosterOrder = append(rosterOrder, key)
			rosterRows[key] = identity
		} else {
			warnings = append(warnings, schedule.NewWarning(schedule.WarnDuplicateIdentity,
				"filas duplicadas para %s; sus fechas trabajadas se combinan", strings.Join(identity, " / ")))
		}

		for _, rc := range resolved {
			shift := schedule.NormalizeShift(grid.CellAt(rowIdx, rc.col.Index))
			if !rules.IsWorked(shift) {
				continue
			}
			if schedule.IsSunday(rc.date) {
				set, ok := sundaySets[key]
				if !ok {
					set = schedule.NewDateSet()
					sundaySets[key] = set
				}
				set.Add(rc.date)
			}
			if holidays.Contains(rc.date) {
				set, ok := holidaySets[key]
				if !ok {
					set = schedule.NewDateSet()
					holidaySets[key] = set
				}
				set.Add(rc.date)
			}
		}
	}

	// Pass 2: one line per roster key in every table, empty-set default.
	report := &Report{
		IdentityColumns: rules.IdentityColumns,
		Sundays:         make([]Row, 0, len(rosterOrder)),
		Holidays:        make([]Row, 0, len(rosterOrder)),
		Totals:          make([]TotalRow, 0, len(rosterOrder)),
		Period:          period,
		HolidaySet:      holidays,
		Warnings:        warnings,
	}

	for _, key := range rosterOrder {
		identity := rosterRows[key]
		sundays := lookup(sundaySets, key)
		festivos := lookup(holidaySets, key)
		all := sundays.Union(festivos)

		report.Sundays = append(report.Sundays, Row{
			Identity: identity,
			Count:    sundays.Len(),
			Dates:    sundays.String(),
		})
		report.Holidays = append(report.Holidays, Row{
			Identity: identity,
			Count:    festivos.Len(),
			Dates:    festivos.String(),
		})
		report.Totals = append(report.Totals, TotalRow{
			Identity:     identity,
			Sundays:      sundays.Len(),
			Holidays:     festivos.Len(),
			Total:        all.Len(),
			SundayDates:  sundays.String(),
			HolidayDates: festivos.String(),
			AllDates:     all.String(),
		})
	}

	return report, nil
}

func lookup(sets map[string]schedule.DateSet, key string) schedule.DateSet {
	if set, ok := sets[key]; ok {
		return set
	}
	return schedule.NewDateSet()
}
