/*
engine.go - Orchestration and aggregation

PURPOSE:
  Runs every item calculator in a fixed order, sums the awards, applies
  the fault-percentage deduction, estimates the lawyer fee on the
  prorated total, and emits a summary whose details enumerate every
  intermediate figure.

AGGREGATION:
  1. run items in ItemOrder, collecting results
  2. total before fault = sum of item amounts (each already whole yen)
  3. validate fault percentage in [0, 100]
  4. total after fault = round(total x (1 - fault/100))
  5. lawyer fee from the configured schedule
  6. final = total after fault + fee

FAILURE DISCIPLINE:
  A hard validation error from any item stops further items; the
  summary carries the error with amount 0, and every result computed
  before the failure is preserved. An unexpected panic during
  aggregation is recovered into a summary-only "contact administrator"
  result set - the engine never crashes the process.

SEE ALSO:
  - items.go: the calculators
  - fees.go:  fee schedules
*/
package compensation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/warp/compensation-engine/calendar"
	"github.com/warp/compensation-engine/money"
)

// Engine computes full compensation for a case. It is stateless across
// calls and safe for concurrent use: the table registry is read-only
// and no per-call fields exist.
type Engine struct {
	tables *Tables
	fees   FeeSchedule
}

// NewEngine returns an engine on the shared table registry with the
// canonical tiered fee schedule.
func NewEngine() *Engine {
	return NewEngineWith(Shared(), StandardFeeSchedule())
}

// NewEngineWith injects a table registry and fee schedule. Tests and
// the flat-fee configuration use this.
func NewEngineWith(tables *Tables, fees FeeSchedule) *Engine {
	return &Engine{tables: tables, fees: fees}
}

// CalculateAll computes every award line for a case. refDate anchors
// the discount-regime selection (symptom-fixation date if the caller
// has one, otherwise the caller's "today"); the engine never reads the
// system clock, so identical inputs always produce identical results.
func (e *Engine) CalculateAll(c CaseInput, refDate calendar.Date) (rs *ResultSet) {
	rs = NewResultSet()

	defer func() {
		if r := recover(); r != nil {
			recovered := NewResultSet()
			recovered.Put(ItemSummary, CalculationResult{
				ItemName:           "Summary",
				Amount:             money.Zero(),
				CalculationDetails: "calculation aborted by an internal error",
				Notes:              fmt.Sprintf("unexpected failure, contact administrator: %v", r),
			})
			rs = recovered
		}
	}()

	if err := e.runItems(rs, c, refDate); err != nil {
		rs.Put(ItemSummary, CalculationResult{
			ItemName:           "Summary",
			Amount:             money.Zero(),
			CalculationDetails: "calculation stopped at a validation error; items computed before the failure are kept",
			Notes:              err.Error(),
		})
		return rs
	}

	rs.Put(ItemSummary, e.summarize(rs, c.Person.FaultPercentage))
	return rs
}

// runItems executes the calculators in order, stopping at the first
// hard validation error.
func (e *Engine) runItems(rs *ResultSet, c CaseInput, refDate calendar.Date) error {
	rs.Put(ItemHospitalization, e.injuryConsolation(c.Medical))

	disability, err := e.disabilityConsolation(c.Medical)
	if err != nil {
		return err
	}
	rs.Put(ItemDisability, disability)

	rs.Put(ItemLostIncome, e.lostIncome(c.Income))

	future, err := e.futureIncomeLoss(c, refDate)
	if err != nil {
		return err
	}
	rs.Put(ItemFutureIncomeLoss, future)

	medical, err := e.medicalExpenses(c.Medical)
	if err != nil {
		return err
	}
	rs.Put(ItemMedicalExpenses, medical)

	interest, err := e.legalInterest(c.Interest)
	if err != nil {
		return err
	}
	rs.Put(ItemLegalInterest, interest)

	// Fault is validated with the items so a bad share downgrades the
	// summary exactly like any other hard input defect.
	if err := validateFault(c.Person.FaultPercentage); err != nil {
		return err
	}
	return nil
}

func validateFault(fault decimal.Decimal) error {
	if fault.IsNegative() || fault.GreaterThan(hundred) {
		return &FaultRangeError{Fault: fault}
	}
	return nil
}

// summarize produces the final award line from the computed items.
func (e *Engine) summarize(rs *ResultSet, fault decimal.Decimal) CalculationResult {
	totalBefore := rs.ItemTotal()

	// Item amounts are already whole yen, so the sum needs no rounding;
	// the proration result does.
	retained := decimal.NewFromInt(1).Sub(fault.Div(hundred))
	totalAfter := totalBefore.MulDecimal(retained).RoundYen()

	fee, feeDetail := e.fees.Fee(totalAfter)
	final := totalAfter.Add(fee)

	var b strings.Builder
	fmt.Fprintf(&b, "total before fault deduction: %s yen\n", totalBefore)
	fmt.Fprintf(&b, "fault deduction: %s%% -> %s x (1 - %s/100) = %s yen\n", fault, totalBefore, fault, totalAfter)
	fmt.Fprintf(&b, "lawyer fee: %s\n", feeDetail)
	fmt.Fprintf(&b, "final award: %s + %s = %s yen", totalAfter, fee, final)

	return CalculationResult{
		ItemName:           "Summary",
		Amount:             final,
		CalculationDetails: b.String(),
	}
}
