/*
interest.go - Statutory simple interest

PURPOSE:
  Computes simple legal interest on a principal over an inclusive date
  span, at the statutory annual rate fixed by the accrual start date:

    start before 2020-04-01:      5% (pre-reform civil rate)
    start on or after 2020-04-01: 3% (post-reform initial rate; the
                                  3-year periodic review is not modeled)

CONVENTIONS (legal, not bugs):
  - Both endpoints count: interest from a date to the same date is one
    day, never zero.
  - The divisor is always 365. Leap-year extra days raise the day count
    but never the divisor.
  - The result is quantized half-up to whole yen.

SEE ALSO:
  - calendar: DaysInclusive
  - items.go: the legal-interest line item
*/
package compensation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/compensation-engine/calendar"
	"github.com/warp/compensation-engine/money"
)

// StatutoryReformDate is the 2020 Civil Code amendment date that moved
// the default legal interest rate from 5% to an initial 3%. It also
// anchors the discount-regime selection in coefficient.go.
var StatutoryReformDate = calendar.MustParse("2020-04-01")

var hundred = decimal.NewFromInt(100)

// StatutoryRate returns the annual legal interest rate applicable to
// interest accruing from the given date.
func StatutoryRate(start calendar.Date) (decimal.Decimal, error) {
	if start.IsZero() {
		return decimal.Zero, fmt.Errorf("statutory rate: %w", ErrMissingDate)
	}
	if start.Before(StatutoryReformDate) {
		return hoffmannRate, nil // 5%
	}
	return leibnizRate, nil // 3%
}

// InterestResult carries a computed interest amount with its full
// derivation. Detail is part of the contract: downstream reports render
// it verbatim.
type InterestResult struct {
	Amount money.Amount
	Days   int
	Detail string
}

// SimpleInterest computes principal x rate x days / 365 over an
// inclusive span, quantized half-up to whole yen.
//
// A non-positive principal or rate is a valid "no interest due" outcome
// (zero result with an explanatory detail), not an error. A reversed or
// missing date is a hard validation error.
func SimpleInterest(principal money.Amount, rate decimal.Decimal, start, end calendar.Date) (InterestResult, error) {
	if start.IsZero() || end.IsZero() {
		return InterestResult{}, fmt.Errorf("interest period: %w", ErrMissingDate)
	}
	if end.Before(start) {
		return InterestResult{}, &DateOrderError{Start: start, End: end}
	}
	if !principal.IsPositive() || !rate.IsPositive() {
		return InterestResult{
			Amount: money.Zero(),
			Detail: fmt.Sprintf("no interest due: principal %s yen, rate %s%%", principal, rate.Mul(hundred)),
		}, nil
	}

	days := calendar.DaysInclusive(start, end)
	amount := principal.MulDecimal(rate).MulFrac(int64(days), 365).RoundYen()

	detail := fmt.Sprintf(
		"%s yen x %s%% x %d days / 365 = %s yen (period %s to %s, both endpoints inclusive)",
		principal, rate.Mul(hundred), days, amount, start, end,
	)
	return InterestResult{Amount: amount, Days: days, Detail: detail}, nil
}
