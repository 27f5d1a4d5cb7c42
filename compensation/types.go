/*
Package compensation implements the damage-compensation calculation
engine for personal-injury cases under lawyer-standard practice.

PURPOSE:
  Turns a structured case description (dates, medical facts, income
  facts, fault share) into itemized monetary awards computed from the
  published legal tables and formulas: treatment-duration consolation,
  disability consolation, lost income, discounted future income loss,
  statutory interest, fault proration, and lawyer-fee estimation.

KEY CONCEPTS IN THIS FILE (types.go):
  - CaseInput:         Immutable description of one case; the engine is
                       a pure function of it plus a reference date
  - CalculationResult: One award line with its full derivation string
  - ResultSet:         Ordered item-key -> result mapping
  - ItemKey:           Stable identifiers for the seven award lines

DESIGN PRINCIPLES:
  1. Purity: CalculateAll never mutates its input, never reads the
     system clock, and holds no per-call state
  2. Precision: all money flows through money.Amount (decimal); every
     award is quantized half-up to whole yen exactly once
  3. Soft zeroes over errors: "nothing to compute" is a zero-amount
     result with a note, never a failure
  4. Shared read-only tables: published tables are built once and read
     concurrently without locking

USAGE:
  eng := compensation.NewEngine()
  results := eng.CalculateAll(caseInput, refDate)
  summary, _ := results.Get(compensation.ItemSummary)

SEE ALSO:
  - tables.go:      published table data and the shared registry
  - engine.go:      orchestration and aggregation
  - items.go:       the per-item calculators
*/
package compensation

import (
	"github.com/shopspring/decimal"

	"github.com/warp/compensation-engine/calendar"
	"github.com/warp/compensation-engine/money"
)

// DefaultRetirementAge is the working-life endpoint assumed when a case
// does not carry an explicit retirement age.
const DefaultRetirementAge = 67

// =============================================================================
// ITEM KEYS
// =============================================================================

type ItemKey string

const (
	ItemHospitalization  ItemKey = "hospitalization"
	ItemDisability       ItemKey = "disability"
	ItemLostIncome       ItemKey = "lost_income"
	ItemFutureIncomeLoss ItemKey = "future_income_loss"
	ItemMedicalExpenses  ItemKey = "medical_expenses"
	ItemLegalInterest    ItemKey = "legal_interest"
	ItemSummary          ItemKey = "summary"
)

// ItemOrder is the order item calculators run in and the order results
// are emitted in. Summary is always appended last.
var ItemOrder = []ItemKey{
	ItemHospitalization,
	ItemDisability,
	ItemLostIncome,
	ItemFutureIncomeLoss,
	ItemMedicalExpenses,
	ItemLegalInterest,
}

// =============================================================================
// CASE INPUT
// =============================================================================

// PersonInfo describes the injured party.
type PersonInfo struct {
	Age             int             `json:"age"`
	FaultPercentage decimal.Decimal `json:"fault_percentage"` // 0..100 inclusive
	AnnualIncome    money.Amount    `json:"annual_income"`
	RetirementAge   int             `json:"retirement_age"` // 0 means default (67); values <= Age also default
}

// EffectiveRetirementAge resolves the retirement age, defaulting to 67
// when unset or not beyond the current age.
func (p PersonInfo) EffectiveRetirementAge() int {
	if p.RetirementAge <= 0 || p.RetirementAge <= p.Age {
		return DefaultRetirementAge
	}
	return p.RetirementAge
}

// MedicalInfo describes treatment and residual disability.
type MedicalInfo struct {
	HospitalMonths       int          `json:"hospital_months"`
	OutpatientMonths     int          `json:"outpatient_months"`
	ActualOutpatientDays int          `json:"actual_outpatient_days"` // informational only; carried into details
	IsWhiplash           bool         `json:"is_whiplash"`            // selects the reduced consolation table
	DisabilityGrade      int          `json:"disability_grade"`       // 1..14; 0 means no compensable disability
	MedicalExpenses      money.Amount `json:"medical_expenses"`
}

// IncomeInfo describes income facts for lost-income items.
type IncomeInfo struct {
	LostWorkDays      int          `json:"lost_work_days"`
	DailyIncome       money.Amount `json:"daily_income"`
	BasicAnnualIncome money.Amount `json:"basic_annual_income"` // falls back to PersonInfo.AnnualIncome when zero
	LossPeriodYears   int          `json:"loss_period_years"`   // 0 means derive from retirement age - age
}

// InterestInput is the optional legal-interest line item.
type InterestInput struct {
	Principal   money.Amount  `json:"principal_amount"`
	StartDate   calendar.Date `json:"interest_start_date"`
	EndDate     calendar.Date `json:"interest_end_date"`
	Description string        `json:"description"`
}

// CaseInput aggregates everything the engine needs for one calculation.
// The engine never mutates it.
type CaseInput struct {
	Person   PersonInfo     `json:"person"`
	Medical  MedicalInfo    `json:"medical"`
	Income   IncomeInfo     `json:"income"`
	Interest *InterestInput `json:"interest,omitempty"` // nil when no interest item is claimed
}

// BasicAnnualIncome resolves the income base for future income loss.
func (c CaseInput) BasicAnnualIncome() money.Amount {
	if c.Income.BasicAnnualIncome.IsZero() {
		return c.Person.AnnualIncome
	}
	return c.Income.BasicAnnualIncome
}

// LossPeriodYears resolves the future-loss period: the explicit input
// when positive, otherwise working years remaining to retirement.
func (c CaseInput) LossPeriodYears() int {
	if c.Income.LossPeriodYears > 0 {
		return c.Income.LossPeriodYears
	}
	years := c.Person.EffectiveRetirementAge() - c.Person.Age
	if years < 0 {
		return 0
	}
	return years
}

// =============================================================================
// CALCULATION RESULT
// =============================================================================

// CalculationResult is one award line. Amount is always a non-negative
// whole-yen value. CalculationDetails carries every intermediate figure
// used; downstream reports render it verbatim.
type CalculationResult struct {
	ItemName           string
	Amount             money.Amount
	CalculationDetails string
	LegalBasis         string
	Notes              string
}

// =============================================================================
// RESULT SET - ordered item mapping
// =============================================================================

// ResultSet holds per-item results in calculation order.
type ResultSet struct {
	keys    []ItemKey
	results map[ItemKey]CalculationResult
}

func NewResultSet() *ResultSet {
	return &ResultSet{results: make(map[ItemKey]CalculationResult)}
}

// Put adds or replaces a result, preserving first-insertion order.
func (rs *ResultSet) Put(key ItemKey, r CalculationResult) {
	if _, exists := rs.results[key]; !exists {
		rs.keys = append(rs.keys, key)
	}
	rs.results[key] = r
}

func (rs *ResultSet) Get(key ItemKey) (CalculationResult, bool) {
	r, ok := rs.results[key]
	return r, ok
}

// Keys returns item keys in insertion order.
func (rs *ResultSet) Keys() []ItemKey {
	out := make([]ItemKey, len(rs.keys))
	copy(out, rs.keys)
	return out
}

func (rs *ResultSet) Len() int { return len(rs.keys) }

// ItemTotal sums the amounts of every non-summary item.
func (rs *ResultSet) ItemTotal() money.Amount {
	total := money.Zero()
	for _, k := range rs.keys {
		if k == ItemSummary {
			continue
		}
		total = total.Add(rs.results[k].Amount)
	}
	return total
}
