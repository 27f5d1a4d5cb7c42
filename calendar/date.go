/*
Package calendar provides the civil-date value type used throughout the
compensation engine.

PURPOSE:
  Every date in a damages case (interest accrual endpoints, the
  coefficient reference date, the statutory-rate cutoff) is a calendar
  day with no time-of-day component. Date wraps time.Time normalized to
  midnight UTC so comparisons and day arithmetic behave like legal
  calendar dates, not instants.

KEY CONCEPTS:
  - Date:           A single civil day (UTC midnight internally)
  - DaysInclusive:  Day count with BOTH endpoints counted. Legal
                    interest runs from and including the start date
                    through and including the end date, so
                    DaysInclusive(d, d) == 1.

USAGE:
  start := calendar.NewDate(2020, time.April, 1)
  end, _ := calendar.Parse("2021-03-31")
  days := calendar.DaysInclusive(start, end) // 365

SEE ALSO:
  - compensation/interest.go: statutory rate selection by date
  - compensation/coefficient.go: discount-regime selection by date
*/
package calendar

import (
	"fmt"
	"time"
)

// Layout is the wire format for dates (ISO 8601 calendar date).
const Layout = "2006-01-02"

// =============================================================================
// DATE - A civil day
// =============================================================================

type Date struct {
	t time.Time
}

// NewDate constructs a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates an instant to its civil day (in the instant's location).
func FromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Parse parses a "2006-01-02" string.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// MustParse parses a date literal and panics on malformed input.
// Intended for package-level constants such as statutory cutoffs.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Today returns the current civil day. Calculation code never calls
// this; it exists for callers (CLI, HTTP layer) that need a default.
func Today() Date {
	return FromTime(time.Now())
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

// Arithmetic
func (d Date) AddDays(n int) Date  { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) AddYears(n int) Date { return Date{t: d.t.AddDate(n, 0, 0)} }

// Properties
func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }
func (d Date) IsZero() bool      { return d.t.IsZero() }
func (d Date) Time() time.Time   { return d.t }

func (d Date) String() string { return d.t.Format(Layout) }

// MarshalText / UnmarshalText make Date usable directly in JSON DTOs.
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// DAY SPANS
// =============================================================================

// DaysBetween returns the number of whole days from one date to another
// (exclusive of the start). Negative when to precedes from.
func DaysBetween(from, to Date) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

// DaysInclusive counts days with both endpoints included, the
// convention legal interest accrues under. Same start and end is 1 day.
func DaysInclusive(from, to Date) int {
	return DaysBetween(from, to) + 1
}
