/*
errors.go - Error and warning types for the engine

PURPOSE:
  Separates "fix your file" failures from "file a bug" failures. Data errors
  are user-actionable precondition violations: the caller should show the
  message as-is and abort before rendering partial tables. Anything else
  surfaces as an ordinary error with full diagnostic detail.

ERROR CATEGORIES:
  1. Data errors - bad input structure (no date columns, unparseable headers)
  2. Warnings - non-fatal, processing continues (bad holiday fragments,
     duplicate identity keys)
  3. Internal errors - everything else, plain wrapped errors

USAGE:
  if schedule.IsDataError(err) {
      // 422-style response: tell the user how to fix the sheet
  }
*/
package schedule

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNoDateColumns is returned when detection finds no date columns at
	// all. The sheet likely has malformed headers.
	ErrNoDateColumns = errors.New("no date columns detected")

	// ErrNoParseableDateHeaders is returned when every candidate header fails
	// to resolve to a calendar date during aggregation.
	ErrNoParseableDateHeaders = errors.New("no date column header parses as a date")
)

// =============================================================================
// DATA ERROR - User-actionable precondition violation
// =============================================================================

// DataError is a fatal input problem the user can fix themselves. The message
// names the expected format so it can be shown verbatim.
type DataError struct {
	Message string
	cause   error
}

func (e *DataError) Error() string { return e.Message }
func (e *DataError) Unwrap() error { return e.cause }

// NewDataError wraps a sentinel with a user-facing message.
func NewDataError(cause error, format string, args ...any) *DataError {
	return &DataError{Message: fmt.Sprintf(format, args...), cause: cause}
}

// IsDataError reports whether the error is a user-actionable data problem
// rather than an internal failure.
func IsDataError(err error) bool {
	var de *DataError
	return errors.As(err, &de)
}

// =============================================================================
// WARNINGS - Non-fatal findings collected during processing
// =============================================================================

const (
	WarnHolidayUnparsed   = "holiday_unparsed"
	WarnDuplicateIdentity = "duplicate_identity"
)

// Warning is a non-fatal finding. The engine collects warnings in its result
// instead of logging; the caller decides where they surface.
type Warning struct {
	Code    string
	Message string
}

func (w Warning) String() string { return w.Message }

// NewWarning builds a warning with a formatted message.
func NewWarning(code, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}
