/*
holidays.go - Free-text holiday parsing

PURPOSE:
  Users paste the period's holidays as free text ("01-01-2026, 15/01/2026").
  This parser is deliberately forgiving: fragments split on commas, semicolons
  or newlines; "." and "/" separators are accepted; day-first interpretation
  is tried first with an ISO/month-first fallback. A fragment that parses
  under neither convention is dropped with a warning naming it - the parse as
  a whole never fails, the report just recognizes fewer holidays.
*/
package schedule

import (
	"regexp"
	"strings"
)

var holidaySplit = regexp.MustCompile(`[,;\n]+`)

// ParseHolidays parses delimiter-separated holiday dates. The returned set is
// deduplicated by calendar date; time-of-day, if present, is discarded.
// Unparseable fragments produce warnings, never errors.
func ParseHolidays(text string) (DateSet, []Warning) {
	holidays := NewDateSet()
	if strings.TrimSpace(text) == "" {
		return holidays, nil
	}

	var warnings []Warning
	for _, fragment := range holidaySplit.Split(text, -1) {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}

		date, err := ParseDayFirst(fragment)
		if err != nil {
			date, err = ParseMonthFirst(fragment)
		}
		if err != nil {
			warnings = append(warnings, NewWarning(WarnHolidayUnparsed,
				"no se pudo interpretar la fecha de feriado %q; se omitirá", fragment))
			continue
		}
		holidays.Add(date)
	}
	return holidays, warnings
}
