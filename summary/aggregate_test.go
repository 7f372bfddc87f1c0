package summary_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnos/attendance-engine/schedule"
	"github.com/turnos/attendance-engine/summary"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// buildGrid assembles a grid from string headers and string rows.
func buildGrid(headers []string, rows ...[]string) *schedule.Grid {
	headerCells := make([]schedule.Cell, len(headers))
	for i, h := range headers {
		headerCells[i] = schedule.StringCell(h)
	}
	cellRows := make([][]schedule.Cell, len(rows))
	for i, row := range rows {
		cells := make([]schedule.Cell, len(row))
		for j, v := range row {
			if v == "" {
				cells[j] = schedule.BlankCell()
			} else {
				cells[j] = schedule.StringCell(v)
			}
		}
		cellRows[i] = cells
	}
	return schedule.NewGrid(headerCells, cellRows)
}

var testHeaders = []string{
	"Nombre del Colaborador", "RUT", "Área", "Supervisor",
	"04-01-2026", "05-01-2026", "11-01-2026",
}

func employee(name, rut string, shifts ...string) []string {
	return append([]string{name, rut, "Ventas", "Carla Soto"}, shifts...)
}

func aggregate(t *testing.T, grid *schedule.Grid, holidays schedule.DateSet) *summary.Report {
	t.Helper()
	rules := schedule.DefaultRules()
	dateCols := schedule.DetectDateColumns(grid, rules.IdentityColumns)
	rep, err := summary.Aggregate(grid, rules, dateCols, holidays)
	require.NoError(t, err)
	return rep
}

// =============================================================================
// END-TO-END SCENARIO
// =============================================================================

func TestAggregate_SundayAndHolidayScenario(t *testing.T) {
	// GIVEN: one employee with "L" on Sunday Jan 4, "AM" on Monday Jan 5
	// (a holiday), and "COON1" on Sunday Jan 11
	grid := buildGrid(testHeaders, employee("Juan Pérez", "11.111.111-1", "L", "AM", "COON1"))
	holidays := schedule.NewDateSet(date(2026, time.January, 5))

	// WHEN: aggregating
	rep := aggregate(t, grid, holidays)

	// THEN: one worked Sunday (the "L" Sunday doesn't count), one worked
	// holiday, union of two distinct dates
	require.Len(t, rep.Sundays, 1)
	assert.Equal(t, 1, rep.Sundays[0].Count)
	assert.Equal(t, "11-01-2026", rep.Sundays[0].Dates)

	require.Len(t, rep.Holidays, 1)
	assert.Equal(t, 1, rep.Holidays[0].Count)
	assert.Equal(t, "05-01-2026", rep.Holidays[0].Dates)

	require.Len(t, rep.Totals, 1)
	total := rep.Totals[0]
	assert.Equal(t, 1, total.Sundays)
	assert.Equal(t, 1, total.Holidays)
	assert.Equal(t, 2, total.Total)
	assert.Equal(t, "05-01-2026, 11-01-2026", total.AllDates)

	assert.Equal(t, "04-01-2026 a 11-01-2026", rep.Period.String())
}

func TestAggregate_SundayHolidayOverlapCountsOnceInUnion(t *testing.T) {
	// GIVEN: Sunday Jan 4 is also a declared holiday, and it was worked
	grid := buildGrid(testHeaders, employee("Juan Pérez", "11.111.111-1", "AM", "", ""))
	holidays := schedule.NewDateSet(date(2026, time.January, 4))

	rep := aggregate(t, grid, holidays)

	total := rep.Totals[0]
	assert.Equal(t, 1, total.Sundays)
	assert.Equal(t, 1, total.Holidays)
	assert.Equal(t, 1, total.Total, "a date that is both Sunday and holiday counts once")
	assert.Equal(t, total.Total, total.Sundays+total.Holidays-1)
	assert.Equal(t, "04-01-2026", total.AllDates)
}

// =============================================================================
// ROSTER SEMANTICS
// =============================================================================

func TestAggregate_EveryEmployeeAppearsExactlyOncePerTable(t *testing.T) {
	// GIVEN: three employees, one of whom never worked a Sunday or holiday
	grid := buildGrid(testHeaders,
		employee("Juan Pérez", "11.111.111-1", "", "AM", "COON1"),
		employee("María López", "22.222.222-2", "L", "L", ""),
		employee("Pedro Rojas", "33.333.333-3", "PM", "", "PM"),
	)
	holidays := schedule.NewDateSet(date(2026, time.January, 5))

	rep := aggregate(t, grid, holidays)

	assert.Len(t, rep.Sundays, 3)
	assert.Len(t, rep.Holidays, 3)
	assert.Len(t, rep.Totals, 3)

	// María worked nothing that counts: she still appears, zeroed
	assert.Equal(t, "María López", rep.Sundays[1].Identity[0])
	assert.Equal(t, 0, rep.Sundays[1].Count)
	assert.Equal(t, "", rep.Sundays[1].Dates)
	assert.Equal(t, 0, rep.Totals[1].Total)
}

func TestAggregate_RosterPreservesFirstSeenOrder(t *testing.T) {
	grid := buildGrid(testHeaders,
		employee("Zoe Vidal", "99.999.999-9", "AM", "", ""),
		employee("Ana Díaz", "10.101.010-0", "", "PM", ""),
	)

	rep := aggregate(t, grid, schedule.NewDateSet())

	assert.Equal(t, "Zoe Vidal", rep.Totals[0].Identity[0])
	assert.Equal(t, "Ana Díaz", rep.Totals[1].Identity[0])
}

func TestAggregate_DuplicateIdentityKeysMergeWithWarning(t *testing.T) {
	// GIVEN: the same identity tuple on two rows, working different Sundays
	grid := buildGrid(testHeaders,
		employee("Juan Pérez", "11.111.111-1", "AM", "", ""),
		employee("Juan Pérez", "11.111.111-1", "", "", "PM"),
	)

	rep := aggregate(t, grid, schedule.NewDateSet())

	require.Len(t, rep.Totals, 1, "duplicate rows merge into one roster entry")
	assert.Equal(t, 2, rep.Totals[0].Sundays)
	assert.Equal(t, "04-01-2026, 11-01-2026", rep.Totals[0].SundayDates)

	require.Len(t, rep.Warnings, 1)
	assert.Equal(t, schedule.WarnDuplicateIdentity, rep.Warnings[0].Code)
	assert.Contains(t, rep.Warnings[0].Message, "Juan Pérez")
}

// =============================================================================
// HOLIDAY EDGE CASES
// =============================================================================

func TestAggregate_EmptyHolidaySetZeroesHolidayTableWithoutError(t *testing.T) {
	grid := buildGrid(testHeaders,
		employee("Juan Pérez", "11.111.111-1", "AM", "AM", "AM"),
		employee("María López", "22.222.222-2", "PM", "PM", "PM"),
	)

	rep := aggregate(t, grid, schedule.NewDateSet())

	require.Len(t, rep.Holidays, 2)
	for _, row := range rep.Holidays {
		assert.Equal(t, 0, row.Count)
		assert.Equal(t, "", row.Dates)
	}
	assert.Equal(t, summary.NoHolidaysPlaceholder, rep.FormatHolidays())
}

func TestAggregate_HolidayOnNonWorkedDateDoesNotCount(t *testing.T) {
	// The holiday falls on the "L" day: not worked, so it never counts
	grid := buildGrid(testHeaders, employee("Juan Pérez", "11.111.111-1", "AM", "L", ""))
	holidays := schedule.NewDateSet(date(2026, time.January, 5))

	rep := aggregate(t, grid, holidays)

	assert.Equal(t, 0, rep.Holidays[0].Count)
}

// =============================================================================
// PRECONDITIONS
// =============================================================================

func TestAggregate_NoDateColumnsIsADataError(t *testing.T) {
	grid := buildGrid([]string{"Nombre del Colaborador", "RUT", "Área", "Supervisor", "Total"},
		[]string{"Juan Pérez", "11.111.111-1", "Ventas", "Carla Soto", "20"},
	)
	rules := schedule.DefaultRules()

	_, err := summary.Aggregate(grid, rules, nil, schedule.NewDateSet())

	require.Error(t, err)
	assert.True(t, schedule.IsDataError(err))
	assert.ErrorIs(t, err, schedule.ErrNoDateColumns)
	assert.Contains(t, err.Error(), "01-01-2026", "message names the expected header format")
}

func TestAggregate_AllHeadersUnparseableIsADataError(t *testing.T) {
	// Bypassing detection with hand-built bogus date columns exercises the
	// defensive re-check
	grid := buildGrid(testHeaders, employee("Juan Pérez", "11.111.111-1", "AM", "", ""))
	bogus := []schedule.Column{{Index: 4, Label: "Total", Header: schedule.StringCell("Total")}}

	_, err := summary.Aggregate(grid, schedule.DefaultRules(), bogus, schedule.NewDateSet())

	require.Error(t, err)
	assert.True(t, schedule.IsDataError(err))
	assert.ErrorIs(t, err, schedule.ErrNoParseableDateHeaders)
}

func TestAggregate_MissingIdentityColumnIsInternalNotDataError(t *testing.T) {
	grid := buildGrid([]string{"Colaborador", "04-01-2026"}, []string{"Juan", "AM"})
	rules := schedule.DefaultRules()
	dateCols := schedule.DetectDateColumns(grid, rules.IdentityColumns)

	_, err := summary.Aggregate(grid, rules, dateCols, schedule.NewDateSet())

	require.Error(t, err)
	assert.False(t, schedule.IsDataError(err), "caller-side precondition, not a data error")
}
