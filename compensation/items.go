/*
items.go - Per-item award calculators

PURPOSE:
  One function per award line. Each returns a CalculationResult and
  resolves its own "nothing to compute" case to a zero amount with a
  note; only genuine input defects (negative medical expenses, reversed
  interest dates) surface as errors for the engine boundary to catch.

ITEMS:
  injuryConsolation    treatment-duration consolation (2D table, man-yen)
  disabilityConsolation grade-keyed consolation (1D table, man-yen)
  lostIncome           daily income x lost work days
  futureIncomeLoss     income x loss rate x discount coefficient
  medicalExpenses      pass-through with negative-input validation
  legalInterest        optional statutory-interest line

SEE ALSO:
  - engine.go: runs these in ItemOrder and aggregates
*/
package compensation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/compensation-engine/calendar"
	"github.com/warp/compensation-engine/money"
)

const (
	basisInjuryTable     = "Red Book Table I (入通院慰謝料)"
	basisWhiplashTable   = "Red Book Table II analogue (むちうち等他覚所見なし, Table I x 0.67)"
	basisDisabilityTable = "lawyer-standard disability consolation (後遺障害慰謝料)"
	basisLossRate        = "labor capacity loss rate schedule (労働能力喪失率表)"
	basisCivil404        = "Civil Code Art. 404 (民法404条)"
	basisCivil709        = "Civil Code Art. 709 (民法709条)"
)

// injuryConsolation computes hospitalization/outpatient consolation
// from the 2D table, converting the table's man-yen unit to yen.
func (e *Engine) injuryConsolation(m MedicalInfo) CalculationResult {
	res := CalculationResult{ItemName: "Injury consolation (hospitalization/outpatient)"}

	if m.HospitalMonths == 0 && m.OutpatientMonths == 0 {
		res.Amount = money.Zero()
		res.Notes = "no hospitalization or outpatient treatment"
		res.CalculationDetails = "hospital 0 months, outpatient 0 months: no consolation accrues"
		return res
	}

	table := e.tables.InjuryTable(m.IsWhiplash)
	basis := basisInjuryTable
	if m.IsWhiplash {
		basis = basisWhiplashTable
	}
	res.LegalBasis = basis

	lookup, err := table.Lookup(m.HospitalMonths, m.OutpatientMonths)
	if err != nil {
		// Empty tables cannot occur with the embedded data; treat as a
		// no-entry outcome rather than failing the whole case.
		res.Amount = money.Zero()
		res.Notes = err.Error()
		return res
	}
	if !lookup.Found {
		res.Amount = money.Zero()
		res.Notes = lookup.Note
		res.CalculationDetails = fmt.Sprintf(
			"hospital %d months, outpatient %d months: no table entry", m.HospitalMonths, m.OutpatientMonths)
		return res
	}

	res.Amount = money.FromManYen(lookup.Value)
	res.Notes = lookup.Note
	res.CalculationDetails = fmt.Sprintf(
		"hospital %d months, outpatient %d months (actual outpatient days %d): table entry (%d, %d) = %d man-yen = %s yen",
		m.HospitalMonths, m.OutpatientMonths, m.ActualOutpatientDays,
		lookup.Row, lookup.Col, lookup.Value, res.Amount,
	)
	return res
}

// disabilityConsolation computes the grade-keyed consolation item.
// Grade 0 or absent is "no compensable disability", a soft zero.
func (e *Engine) disabilityConsolation(m MedicalInfo) (CalculationResult, error) {
	res := CalculationResult{ItemName: "Disability consolation"}

	if m.DisabilityGrade == 0 {
		res.Amount = money.Zero()
		res.Notes = "no compensable disability (grade absent)"
		res.CalculationDetails = "disability grade 0: no disability consolation accrues"
		return res, nil
	}

	lookup, err := e.tables.DisabilityConsolation().Lookup(m.DisabilityGrade)
	if err != nil {
		return res, fmt.Errorf("disability grade %d: %w", m.DisabilityGrade, err)
	}

	res.Amount = money.FromManYen(lookup.Value)
	res.LegalBasis = basisDisabilityTable
	res.Notes = lookup.Note
	res.CalculationDetails = fmt.Sprintf(
		"disability grade %d: %d man-yen = %s yen", lookup.Key, lookup.Value, res.Amount)
	return res, nil
}

// lostIncome computes temporary lost income: daily income x lost days.
func (e *Engine) lostIncome(inc IncomeInfo) CalculationResult {
	res := CalculationResult{ItemName: "Lost income (temporary absence)"}

	if inc.LostWorkDays == 0 || !inc.DailyIncome.IsPositive() {
		res.Amount = money.Zero()
		res.Notes = "no lost work days or no daily income"
		res.CalculationDetails = fmt.Sprintf(
			"daily income %s yen x %d lost days: nothing to compute", inc.DailyIncome, inc.LostWorkDays)
		return res
	}

	res.Amount = inc.DailyIncome.MulInt(int64(inc.LostWorkDays)).RoundYen()
	res.LegalBasis = basisCivil709
	res.CalculationDetails = fmt.Sprintf(
		"%s yen/day x %d lost work days = %s yen", inc.DailyIncome, inc.LostWorkDays, res.Amount)
	return res
}

// futureIncomeLoss computes discounted future income loss:
// income base x loss rate x present-value coefficient.
func (e *Engine) futureIncomeLoss(c CaseInput, refDate calendar.Date) (CalculationResult, error) {
	res := CalculationResult{ItemName: "Future income loss"}

	zero := func(reason string) CalculationResult {
		res.Amount = money.Zero()
		res.Notes = reason
		res.CalculationDetails = "future income loss is zero: " + reason
		return res
	}

	if c.Medical.DisabilityGrade == 0 {
		return zero("no compensable disability (grade absent)"), nil
	}

	rateLookup, err := e.tables.LossRate().Lookup(c.Medical.DisabilityGrade)
	if err != nil {
		return res, fmt.Errorf("loss rate for grade %d: %w", c.Medical.DisabilityGrade, err)
	}
	if rateLookup.Value == 0 {
		return zero("loss rate is zero for this grade"), nil
	}

	income := c.BasicAnnualIncome()
	if !income.IsPositive() {
		return zero("basic annual income is zero"), nil
	}

	years := c.LossPeriodYears()
	if years == 0 {
		return zero("loss period resolves to zero years"), nil
	}

	coefficient, regime := e.tables.Coefficient(years, refDate)
	lossRate := decimal.NewFromInt(rateLookup.Value).Div(hundred)
	res.Amount = income.MulDecimal(lossRate).MulDecimal(coefficient).RoundYen()
	res.LegalBasis = basisLossRate
	res.Notes = rateLookup.Note
	res.CalculationDetails = fmt.Sprintf(
		"annual income %s yen x loss rate %d%% (grade %d) x coefficient %s (%s, %d years, reference date %s) = %s yen",
		income, rateLookup.Value, rateLookup.Key, coefficient, regime, years, refDate, res.Amount,
	)
	return res, nil
}

// medicalExpenses passes the expense figure through. A negative figure
// is a data-entry defect and a hard error, never a silent zero.
func (e *Engine) medicalExpenses(m MedicalInfo) (CalculationResult, error) {
	res := CalculationResult{ItemName: "Medical expenses"}

	if m.MedicalExpenses.IsNegative() {
		return res, &NegativeAmountError{Field: "medical expenses", Amount: m.MedicalExpenses}
	}

	res.Amount = m.MedicalExpenses.RoundYen()
	res.CalculationDetails = fmt.Sprintf("medical expenses as incurred: %s yen", res.Amount)
	if res.Amount.IsZero() {
		res.Notes = "no medical expenses claimed"
	}
	return res, nil
}

// legalInterest computes the optional statutory-interest line. An
// absent input, missing endpoint, or non-positive principal is a soft
// zero; a reversed period is a hard error.
func (e *Engine) legalInterest(in *InterestInput) (CalculationResult, error) {
	res := CalculationResult{ItemName: "Legal interest"}

	if in == nil {
		res.Amount = money.Zero()
		res.Notes = "no interest claimed"
		res.CalculationDetails = "interest input absent: nothing to compute"
		return res, nil
	}
	if in.Description != "" {
		res.ItemName = "Legal interest: " + in.Description
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() || !in.Principal.IsPositive() {
		res.Amount = money.Zero()
		res.Notes = "interest input incomplete (principal, start and end date all required)"
		res.CalculationDetails = fmt.Sprintf(
			"principal %s yen, start %s, end %s: nothing to compute", in.Principal, in.StartDate, in.EndDate)
		return res, nil
	}

	rate, err := StatutoryRate(in.StartDate)
	if err != nil {
		return res, err
	}
	interest, err := SimpleInterest(in.Principal, rate, in.StartDate, in.EndDate)
	if err != nil {
		return res, err
	}

	res.Amount = interest.Amount
	res.LegalBasis = basisCivil404
	res.CalculationDetails = interest.Detail
	return res, nil
}
