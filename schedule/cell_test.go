package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/turnos/attendance-engine/schedule"
)

func TestNormalizeShift_NullLikeValuesBecomeEmpty(t *testing.T) {
	cases := []struct {
		name string
		cell schedule.Cell
	}{
		{"blank cell", schedule.BlankCell()},
		{"empty string", schedule.StringCell("")},
		{"whitespace only", schedule.StringCell("   ")},
		{"nan lowercase", schedule.StringCell("nan")},
		{"nan mixed case", schedule.StringCell("NaN")},
		{"none lowercase", schedule.StringCell("none")},
		{"none uppercase", schedule.StringCell("NONE")},
		{"padded nan", schedule.StringCell("  nan  ")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, "", schedule.NormalizeShift(tc.cell))
		})
	}
}

func TestNormalizeShift_PreservesCasingAndContent(t *testing.T) {
	assert.Equal(t, "AM", schedule.NormalizeShift(schedule.StringCell("  AM ")))
	assert.Equal(t, "COON1", schedule.NormalizeShift(schedule.StringCell("COON1")))
	assert.Equal(t, "L", schedule.NormalizeShift(schedule.StringCell("L")))
	assert.Equal(t, "l", schedule.NormalizeShift(schedule.StringCell("l")))
}

func TestNormalizeShift_NumberAndTimeCells(t *testing.T) {
	assert.Equal(t, "7", schedule.NormalizeShift(schedule.NumberCell(7)))
	assert.Equal(t, "7.5", schedule.NormalizeShift(schedule.NumberCell(7.5)))

	jan4 := time.Date(2026, time.January, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "04-01-2026", schedule.NormalizeShift(schedule.TimeCell(jan4)))
}

func TestIsWorked_OnlyEmptyAndMarkerAreNotWorked(t *testing.T) {
	rules := schedule.DefaultRules()

	cases := []struct {
		shift  string
		worked bool
	}{
		{"", false},
		{"L", false},
		{"l", true}, // lowercase is NOT the marker: case-sensitivity is deliberate
		{"AM", true},
		{"PM", true},
		{"COON1", true},
		{"0", true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.worked, rules.IsWorked(tc.shift), "shift %q", tc.shift)
	}
}

func TestIsWorked_CustomMarker(t *testing.T) {
	rules := schedule.Rules{IdentityColumns: schedule.DefaultIdentityColumns, NonWorkMarker: "LIBRE"}

	assert.False(t, rules.IsWorked("LIBRE"))
	assert.True(t, rules.IsWorked("L"))
}
