/*
dates.go - Day-first date parsing, formatting, and date sets

PURPOSE:
  All calendar handling for the engine. Dates are normalized to midnight UTC
  so that set membership and sorting never depend on time-of-day or zone.

DAY-FIRST CONVENTION:
  Headers and holiday input follow the Latin-American convention: the first
  numeric group is the day ("01-02-2026" is February 1st). Inputs that lead
  with a 4-digit year are treated as ISO. Separators ".", "/" and "-" are
  interchangeable.

SEE ALSO:
  - holidays.go: free-text holiday parsing built on these parsers
  - detect.go: date-column detection built on ParseDayFirst
*/
package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateFormat is the report-facing date layout (DD-MM-YYYY).
const DateFormat = "02-01-2006"

var dayFirstLayouts = []string{
	"2-1-2006",
	"2-1-2006 15:04:05",
	"2-1-06",
}

var monthFirstLayouts = []string{
	"1-2-2006",
	"1-2-2006 15:04:05",
}

var isoLayouts = []string{
	"2006-1-2",
	"2006-1-2 15:04:05",
}

func normalizeSeparators(s string) string {
	s = strings.ReplaceAll(s, ".", "-")
	return strings.ReplaceAll(s, "/", "-")
}

func parseWith(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), true
		}
	}
	return time.Time{}, false
}

// ParseDayFirst parses a textual date with day-first semantics. Inputs that
// start with a 4-digit year fall through to ISO interpretation, matching how
// unambiguous forms should never be reordered.
func ParseDayFirst(s string) (time.Time, error) {
	cleaned := normalizeSeparators(strings.TrimSpace(s))
	if leadsWithYear(cleaned) {
		if t, ok := parseWith(cleaned, isoLayouts); ok {
			return t, nil
		}
	}
	if t, ok := parseWith(cleaned, dayFirstLayouts); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a day-first date", s)
}

// ParseMonthFirst is the fallback interpretation for holiday fragments that
// fail day-first parsing (e.g. "01-15-2026").
func ParseMonthFirst(s string) (time.Time, error) {
	cleaned := normalizeSeparators(strings.TrimSpace(s))
	if leadsWithYear(cleaned) {
		if t, ok := parseWith(cleaned, isoLayouts); ok {
			return t, nil
		}
	}
	if t, ok := parseWith(cleaned, monthFirstLayouts); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a month-first date", s)
}

func leadsWithYear(s string) bool {
	i := strings.IndexAny(s, "-")
	return i == 4
}

// DateOf truncates a timestamp to its calendar date at midnight UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date in the report format (DD-MM-YYYY).
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// FormatDates renders dates as a sorted, comma-joined list in report format.
func FormatDates(dates []time.Time) string {
	sorted := make([]time.Time, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	parts := make([]string, len(sorted))
	for i, d := range sorted {
		parts[i] = FormatDate(d)
	}
	return strings.Join(parts, ", ")
}

// IsSunday reports whether the date falls on a Sunday.
func IsSunday(t time.Time) bool {
	return t.Weekday() == time.Sunday
}

// =============================================================================
// DATE SET - Deduplicated calendar dates
// =============================================================================

// DateSet is a set of calendar dates. All entries are normalized to midnight
// UTC on insertion, so membership is a pure calendar-date comparison.
type DateSet map[time.Time]struct{}

func NewDateSet(dates ...time.Time) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s.Add(d)
	}
	return s
}

func (s DateSet) Add(t time.Time) {
	s[DateOf(t)] = struct{}{}
}

func (s DateSet) Contains(t time.Time) bool {
	_, ok := s[DateOf(t)]
	return ok
}

func (s DateSet) Len() int { return len(s) }

// Sorted returns the member dates in ascending order.
func (s DateSet) Sorted() []time.Time {
	out := make([]time.Time, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Union returns a new set containing the members of both sets. A date present
// in both appears once.
func (s DateSet) Union(other DateSet) DateSet {
	out := make(DateSet, len(s)+len(other))
	for d := range s {
		out[d] = struct{}{}
	}
	for d := range other {
		out[d] = struct{}{}
	}
	return out
}

// String renders the set as a sorted comma-joined list.
func (s DateSet) String() string {
	return FormatDates(s.Sorted())
}
