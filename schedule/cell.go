/*
cell.go - Tagged cell values and shift normalization

PURPOSE:
  Spreadsheet cells arrive with mixed dynamic types: text shifts ("AM", "L",
  "COON1"), numbers, native dates, and blanks. Cell is the tagged variant that
  carries them through the engine without losing the original type, and the
  normalization rules here are the single source of truth for the
  worked/not-worked decision.

NORMALIZATION RULES:
  - Blank cells (and cells whose text reads "nan"/"none", case-insensitive)
    normalize to the empty string.
  - Everything else normalizes to its trimmed string form, casing preserved.

WORKED RULE:
  A normalized shift counts as worked unless it is empty or equals the
  non-work marker exactly. The marker comparison is deliberately
  case-sensitive: "L" is a day off, "l" is a (possibly mistyped) shift code
  and still counts as worked.

SEE ALSO:
  - dates.go: date parsing/formatting for Time cells
  - detect.go: uses Cell headers to find date columns
*/
package schedule

import (
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// CELL - Tagged variant for raw spreadsheet values
// =============================================================================

type CellKind int

const (
	KindBlank CellKind = iota
	KindString
	KindNumber
	KindTime
)

// Cell is a single raw spreadsheet value. Exactly one of the payload fields
// is meaningful, selected by Kind.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
	Time time.Time
}

func BlankCell() Cell           { return Cell{Kind: KindBlank} }
func StringCell(s string) Cell  { return Cell{Kind: KindString, Str: s} }
func NumberCell(f float64) Cell { return Cell{Kind: KindNumber, Num: f} }
func TimeCell(t time.Time) Cell { return Cell{Kind: KindTime, Time: t} }

// String returns the textual form of the cell. Blanks are empty, numbers use
// the shortest exact representation, and dates use the day-first report format.
func (c Cell) String() string {
	switch c.Kind {
	case KindString:
		return c.Str
	case KindNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case KindTime:
		return FormatDate(c.Time)
	default:
		return ""
	}
}

// IsBlank reports whether the cell normalizes to nothing.
func (c Cell) IsBlank() bool {
	return NormalizeShift(c) == ""
}

// =============================================================================
// SHIFT NORMALIZATION
// =============================================================================

// NormalizeShift maps a raw cell to its canonical shift string. Null-like
// values ("nan"/"none" in any casing, blanks) map to "". All other values keep
// their trimmed text form.
func NormalizeShift(c Cell) string {
	s := strings.TrimSpace(c.String())
	switch strings.ToLower(s) {
	case "nan", "none":
		return ""
	}
	return s
}

// =============================================================================
// CLASSIFICATION RULES
// =============================================================================

// DefaultNonWorkMarker is the shift code that means "day off". Exact match
// only: lowercase "l" is not the marker.
const DefaultNonWorkMarker = "L"

// DefaultIdentityColumns are the headers that identify an employee row rather
// than a calendar date.
var DefaultIdentityColumns = []string{
	"Nombre del Colaborador",
	"RUT",
	"Área",
	"Supervisor",
}

// Rules carries the tunable classification knobs. The engine never reads
// these from ambient state; callers pass them in.
type Rules struct {
	IdentityColumns []string
	NonWorkMarker   string
}

func DefaultRules() Rules {
	return Rules{
		IdentityColumns: DefaultIdentityColumns,
		NonWorkMarker:   DefaultNonWorkMarker,
	}
}

// IsWorked reports whether a normalized shift value counts as a worked day.
// Anything non-empty counts, special codes included, except the exact
// non-work marker.
func (r Rules) IsWorked(normalized string) bool {
	return normalized != "" && normalized != r.NonWorkMarker
}
