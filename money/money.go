/*
Package money provides yen amounts and the rounding discipline the
compensation engine must reproduce exactly.

PURPOSE:
  Every award is an integral number of yen produced by half-up rounding
  at a single, well-defined quantization point. This package wraps
  shopspring/decimal so no calculation path ever touches float64, and
  so the rounding rule lives in exactly one place.

KEY CONCEPTS:
  - Amount:   A yen quantity (decimal, arbitrary precision until rounded)
  - RoundYen: Half-up quantization to whole yen. Engine amounts are
              never negative at the rounding point, so decimal's
              half-away-from-zero Round(0) is exactly half-up here.
  - Man-yen:  Published consolation tables are denominated in units of
              10,000 yen; FromManYen converts table values to yen.

USAGE:
  principal := money.FromYen(1_000_000)
  interest := principal.MulDecimal(rate).MulFrac(days, 365).RoundYen()

SEE ALSO:
  - compensation/interest.go: the .5-yen boundary cases this rule decides
  - compensation/tables.go: man-yen table values
*/
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var manYen = decimal.NewFromInt(10_000)

// =============================================================================
// AMOUNT - A yen quantity
// =============================================================================

type Amount struct {
	value decimal.Decimal
}

func FromYen(yen int64) Amount             { return Amount{value: decimal.NewFromInt(yen)} }
func FromDecimal(d decimal.Decimal) Amount { return Amount{value: d} }

// FromManYen converts a table value in man-yen (×10,000) to yen.
func FromManYen(man int64) Amount {
	return Amount{value: decimal.NewFromInt(man).Mul(manYen)}
}

// Parse reads a decimal yen string (wire/storage format).
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{value: d}, nil
}

func Zero() Amount { return Amount{} }

// Arithmetic. Operations return unrounded amounts; callers round once
// at their quantization point via RoundYen.
func (a Amount) Add(b Amount) Amount                 { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount                 { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) MulInt(n int64) Amount               { return Amount{value: a.value.Mul(decimal.NewFromInt(n))} }
func (a Amount) MulDecimal(d decimal.Decimal) Amount { return Amount{value: a.value.Mul(d)} }

// MulFrac multiplies by num/den without intermediate rounding.
func (a Amount) MulFrac(num, den int64) Amount {
	return Amount{value: a.value.Mul(decimal.NewFromInt(num)).Div(decimal.NewFromInt(den))}
}

// RoundYen quantizes half-up to a whole yen. decimal.Round rounds half
// away from zero; amounts at engine quantization points are >= 0, where
// the two conventions coincide.
func (a Amount) RoundYen() Amount { return Amount{value: a.value.Round(0)} }

// Predicates
func (a Amount) IsZero() bool                  { return a.value.IsZero() }
func (a Amount) IsNegative() bool              { return a.value.IsNegative() }
func (a Amount) IsPositive() bool              { return a.value.IsPositive() }
func (a Amount) Equal(b Amount) bool           { return a.value.Equal(b.value) }
func (a Amount) GreaterThan(b Amount) bool     { return a.value.GreaterThan(b.value) }
func (a Amount) LessThanOrEqual(b Amount) bool { return a.value.LessThanOrEqual(b.value) }

// Accessors
func (a Amount) Decimal() decimal.Decimal { return a.value }

// Yen returns the integral yen value. Call only after RoundYen.
func (a Amount) Yen() int64 { return a.value.IntPart() }

// String renders the exact decimal value (no grouping), the format the
// detail strings and the storage layer use.
func (a Amount) String() string { return a.value.String() }

// MarshalText / UnmarshalText for DTO and storage use.
func (a Amount) MarshalText() ([]byte, error) { return []byte(a.value.String()), nil }

func (a *Amount) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
