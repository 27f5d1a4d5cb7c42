/*
coefficient.go - Present-value annuity coefficients for future losses

PURPOSE:
  A future annual loss stream of n whole years is awarded as a lump sum
  discounted to present value. Which discount convention applies is
  fixed by the date the loss period is legally anchored at (symptom
  fixation if known, otherwise the calculation date):

    before 2020-04-01:      Hoffmann convention at the old 5% statutory
                            rate (simple discounting)
    on or after 2020-04-01: Leibniz convention at the initial 3% rate
                            (compound discounting)

GENERATION:
  Each regime's table is generated for years 1..67 from the annuity
  closed form C(n) = (1 - (1+r)^-n) / r rounded to 3 decimal places,
  then overridden at the canonical published years with the officially
  tabulated values. The official tables and the closed form disagree at
  those years (the Hoffmann table is the simple-interest sum
  SUM 1/(1+0.05k), and rounding conventions differ), so overrides
  always win.

LOOKUP:
  years <= 0  -> 0 (nothing to discount)
  years > 67  -> coefficient at 67 (working life is not extended)
  otherwise   -> table entry

SEE ALSO:
  - tables.go: the registry these tables live in
  - items.go:  future income loss, the sole consumer
*/
package compensation

import (
	"github.com/shopspring/decimal"

	"github.com/warp/compensation-engine/calendar"
)

// DiscountRegime names the convention a coefficient was produced under.
type DiscountRegime string

const (
	RegimeHoffmann DiscountRegime = "hoffmann"
	RegimeLeibniz  DiscountRegime = "leibniz"
)

// MaxCoefficientYears is the table ceiling. Loss periods beyond it are
// not legally extended past working-life expectancy.
const MaxCoefficientYears = 67

var (
	hoffmannRate = decimal.RequireFromString("0.05")
	leibnizRate  = decimal.RequireFromString("0.03")
)

// Officially tabulated values at the canonical published years. The
// Hoffmann entries are the simple-interest annuity sums at 5%; the
// Leibniz entries are the published 3% annuity values.
var hoffmannOverrides = map[int]string{
	1: "0.952", 2: "1.861", 3: "2.731", 4: "3.564", 5: "4.364",
	10: "7.945", 15: "10.981", 20: "13.616", 25: "15.944", 30: "18.029",
	35: "19.917", 40: "21.643", 45: "23.231", 50: "24.702", 55: "26.072",
	60: "27.355", 65: "28.560", 67: "29.022",
}

var leibnizOverrides = map[int]string{
	1: "0.971", 2: "1.913", 3: "2.829", 4: "3.717", 5: "4.580",
	10: "8.530", 15: "11.938", 20: "14.877", 25: "17.413", 30: "19.600",
	35: "21.487", 40: "23.115", 45: "24.519", 50: "25.730", 55: "26.774",
	60: "27.676", 65: "28.453", 67: "28.733",
}

// buildCoefficients generates the formula table for years 1..67 and
// applies the published overrides on top.
func buildCoefficients(rate decimal.Decimal, overrides map[int]string) map[int]decimal.Decimal {
	one := decimal.NewFromInt(1)
	base := one.Add(rate)

	table := make(map[int]decimal.Decimal, MaxCoefficientYears)
	for n := 1; n <= MaxCoefficientYears; n++ {
		// C(n) = (1 - (1+r)^-n) / r, rounded to 3 decimal places.
		pv := one.Sub(one.Div(base.Pow(decimal.NewFromInt(int64(n)))))
		table[n] = pv.Div(rate).Round(3)
	}
	for n, s := range overrides {
		table[n] = decimal.RequireFromString(s)
	}
	return table
}

// RegimeFor selects the discount regime anchored at a reference date.
func RegimeFor(refDate calendar.Date) DiscountRegime {
	if refDate.Before(StatutoryReformDate) {
		return RegimeHoffmann
	}
	return RegimeLeibniz
}

// Coefficient returns the present-value annuity coefficient for a loss
// period of the given whole years, anchored at refDate, along with the
// regime that produced it.
func (t *Tables) Coefficient(years int, refDate calendar.Date) (decimal.Decimal, DiscountRegime) {
	regime := RegimeFor(refDate)
	table := t.leibniz
	if regime == RegimeHoffmann {
		table = t.hoffmann
	}

	if years <= 0 {
		return decimal.Zero, regime
	}
	if years > MaxCoefficientYears {
		years = MaxCoefficientYears
	}
	return table[years], regime
}
