package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnos/attendance-engine/schedule"
)

func TestParseHolidays_MixedDelimitersAndSeparators(t *testing.T) {
	// GIVEN: commas, semicolons, and every separator style in one input
	holidays, warnings := schedule.ParseHolidays("01-01-2026, 15/01/2026; 2026.01.20")

	// THEN: exactly the three dates, no warnings
	assert.Empty(t, warnings)
	require.Equal(t, 3, holidays.Len())
	assert.True(t, holidays.Contains(date(2026, time.January, 1)))
	assert.True(t, holidays.Contains(date(2026, time.January, 15)))
	assert.True(t, holidays.Contains(date(2026, time.January, 20)))
}

func TestParseHolidays_NewlineDelimited(t *testing.T) {
	holidays, warnings := schedule.ParseHolidays("01-01-2026\n\n15-01-2026\n")

	assert.Empty(t, warnings)
	assert.Equal(t, 2, holidays.Len())
}

func TestParseHolidays_BadFragmentWarnsAndContinues(t *testing.T) {
	holidays, warnings := schedule.ParseHolidays("01-01-2026, feriado nacional, 20-01-2026")

	assert.Equal(t, 2, holidays.Len())
	require.Len(t, warnings, 1)
	assert.Equal(t, schedule.WarnHolidayUnparsed, warnings[0].Code)
	assert.Contains(t, warnings[0].Message, "feriado nacional")
}

func TestParseHolidays_MonthFirstFallback(t *testing.T) {
	holidays, warnings := schedule.ParseHolidays("01-15-2026")

	assert.Empty(t, warnings)
	assert.True(t, holidays.Contains(date(2026, time.January, 15)))
}

func TestParseHolidays_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n", ",,;"} {
		holidays, warnings := schedule.ParseHolidays(input)
		assert.Equal(t, 0, holidays.Len(), "input %q", input)
		assert.Empty(t, warnings, "input %q", input)
	}
}

func TestParseHolidays_DuplicatesCollapse(t *testing.T) {
	holidays, _ := schedule.ParseHolidays("01-01-2026, 01/01/2026; 2026-01-01")

	assert.Equal(t, 1, holidays.Len())
}
