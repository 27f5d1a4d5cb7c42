/*
fees.go - Lawyer fee schedules

PURPOSE:
  Estimates the lawyer fee from the economic benefit (the prorated
  award total). Two schedules exist in practice and both are carried:

  Tiered (canonical - the former JFBA standard):
    benefit B selects the lowest tier whose upper bound >= B; the fee
    is B x initial rate + initial fixed + B x reward rate + reward
    fixed, quantized half-up. A benefit exactly at a tier's upper bound
    belongs to that (lower) tier.

  Flat (alternate configuration):
    10% of the benefit plus a fixed surcharge.

SEE ALSO:
  - engine.go: applies the schedule to the prorated total
  - cmd/server: FEE_SCHEDULE selects the variant at startup
*/
package compensation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/compensation-engine/money"
)

// FeeSchedule estimates a lawyer fee for an economic benefit. Detail
// carries the full derivation for the summary result.
type FeeSchedule interface {
	Fee(benefit money.Amount) (amount money.Amount, detail string)
}

// =============================================================================
// TIERED SCHEDULE (canonical)
// =============================================================================

type feeTier struct {
	upTo         money.Amount // zero value = no upper bound (top tier)
	initialRate  decimal.Decimal
	initialFixed money.Amount
	rewardRate   decimal.Decimal
	rewardFixed  money.Amount
}

// TieredFeeSchedule is the four-tier progressive schedule.
type TieredFeeSchedule struct {
	tiers []feeTier
}

// StandardFeeSchedule returns the former JFBA four-tier schedule.
func StandardFeeSchedule() *TieredFeeSchedule {
	pct := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return &TieredFeeSchedule{tiers: []feeTier{
		{
			upTo:        money.FromYen(3_000_000),
			initialRate: pct("0.08"), initialFixed: money.Zero(),
			rewardRate: pct("0.16"), rewardFixed: money.Zero(),
		},
		{
			upTo:        money.FromYen(30_000_000),
			initialRate: pct("0.05"), initialFixed: money.FromYen(90_000),
			rewardRate: pct("0.10"), rewardFixed: money.FromYen(180_000),
		},
		{
			upTo:        money.FromYen(300_000_000),
			initialRate: pct("0.03"), initialFixed: money.FromYen(690_000),
			rewardRate: pct("0.06"), rewardFixed: money.FromYen(1_380_000),
		},
		{
			initialRate: pct("0.02"), initialFixed: money.FromYen(3_690_000),
			rewardRate: pct("0.04"), rewardFixed: money.FromYen(7_380_000),
		},
	}}
}

// Fee selects the tier for the benefit and computes the combined
// initial + reward fee, quantized half-up.
func (s *TieredFeeSchedule) Fee(benefit money.Amount) (money.Amount, string) {
	tier := s.tiers[len(s.tiers)-1]
	for _, t := range s.tiers {
		if !t.upTo.IsZero() && benefit.LessThanOrEqual(t.upTo) {
			tier = t
			break
		}
	}

	initial := benefit.MulDecimal(tier.initialRate).Add(tier.initialFixed)
	reward := benefit.MulDecimal(tier.rewardRate).Add(tier.rewardFixed)
	fee := initial.Add(reward).RoundYen()

	detail := fmt.Sprintf(
		"tiered schedule: benefit %s yen -> initial %s x %s + %s, reward %s x %s + %s, fee %s yen",
		benefit,
		benefit, tier.initialRate, tier.initialFixed,
		benefit, tier.rewardRate, tier.rewardFixed,
		fee,
	)
	return fee, detail
}

// =============================================================================
// FLAT SCHEDULE (alternate configuration)
// =============================================================================

// FlatFeeSchedule is the simpler rate-plus-surcharge variant.
type FlatFeeSchedule struct {
	Rate  decimal.Decimal
	Fixed money.Amount
}

// DefaultFlatFeeSchedule returns the common 10% + 200,000 yen variant.
func DefaultFlatFeeSchedule() *FlatFeeSchedule {
	return &FlatFeeSchedule{
		Rate:  decimal.RequireFromString("0.10"),
		Fixed: money.FromYen(200_000),
	}
}

func (s *FlatFeeSchedule) Fee(benefit money.Amount) (money.Amount, string) {
	fee := benefit.MulDecimal(s.Rate).Add(s.Fixed).RoundYen()
	detail := fmt.Sprintf(
		"flat schedule: benefit %s yen x %s + %s = %s yen",
		benefit, s.Rate, s.Fixed, fee,
	)
	return fee, detail
}
