/*
errors.go - Centralized error types for the compensation engine

PURPOSE:
  All error types in one place. The engine distinguishes two abnormal
  families, and only one of them is ever an error value:

  1. Soft "nothing to compute" conditions (no disability grade, absent
     interest input, zero loss period, non-positive principal) resolve
     to a zero-amount CalculationResult with an explanatory note. They
     never appear as errors.
  2. Hard validation errors (negative medical expenses, fault share
     outside [0,100], interest end before start, missing dates) are the
     error values defined here. CalculateAll catches them at its
     boundary, downgrades the summary to zero with the message in
     Notes, and preserves the items computed before the failure.

USAGE:
  if compensation.IsValidation(err) {
      // bad input, not an engine defect
  }

SEE ALSO:
  - engine.go: the catch-at-boundary behavior
  - interest.go, items.go: where these are raised
*/
package compensation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/compensation-engine/calendar"
	"github.com/warp/compensation-engine/money"
	"github.com/warp/compensation-engine/ratetable"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNegativeMedicalExpenses is returned for negative medical
	// expenses. A negative figure is a data-entry defect that must not
	// silently become zero.
	ErrNegativeMedicalExpenses = errors.New("medical expenses are negative")

	// ErrFaultOutOfRange is returned when the fault percentage falls
	// outside [0, 100].
	ErrFaultOutOfRange = errors.New("fault percentage outside [0, 100]")

	// ErrEndBeforeStart is returned when an interest period ends before
	// it starts.
	ErrEndBeforeStart = errors.New("interest end date before start date")

	// ErrMissingDate is returned when a calendar date is required but
	// absent (zero).
	ErrMissingDate = errors.New("calendar date required")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// FaultRangeError reports the offending fault percentage.
type FaultRangeError struct {
	Fault decimal.Decimal
}

func (e *FaultRangeError) Error() string {
	return fmt.Sprintf("fault percentage %s outside [0, 100]", e.Fault)
}

func (e *FaultRangeError) Unwrap() error { return ErrFaultOutOfRange }

// DateOrderError reports a reversed interest period.
type DateOrderError struct {
	Start calendar.Date
	End   calendar.Date
}

func (e *DateOrderError) Error() string {
	return fmt.Sprintf("interest end date %s before start date %s", e.End, e.Start)
}

func (e *DateOrderError) Unwrap() error { return ErrEndBeforeStart }

// NegativeAmountError reports a negative currency input.
type NegativeAmountError struct {
	Field  string
	Amount money.Amount
}

func (e *NegativeAmountError) Error() string {
	return fmt.Sprintf("%s is negative: %s", e.Field, e.Amount)
}

func (e *NegativeAmountError) Unwrap() error { return ErrNegativeMedicalExpenses }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidation reports whether an error is a hard input-validation
// failure (as opposed to an engine defect).
func IsValidation(err error) bool {
	return errors.Is(err, ErrNegativeMedicalExpenses) ||
		errors.Is(err, ErrFaultOutOfRange) ||
		errors.Is(err, ErrEndBeforeStart) ||
		errors.Is(err, ErrMissingDate) ||
		errors.Is(err, ratetable.ErrNegativeKey)
}
