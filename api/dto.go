/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types
  decouple the engine's domain model from the external contract,
  allowing field renaming without breaking clients and API-specific
  validation.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers. The case payload itself reuses compensation.CaseInput,
  whose field tags are the wire format (amounts as decimal strings,
  dates as YYYY-MM-DD).

SEE ALSO:
  - handlers.go: Uses these types
  - compensation/types.go: the embedded case payload
*/
package api

import (
	"github.com/warp/compensation-engine/compensation"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// CalculateRequest asks for a full calculation of an inline case.
// ReferenceDate anchors discount-regime selection and is required: the
// server never substitutes its own clock, so results stay reproducible.
type CalculateRequest struct {
	Case          compensation.CaseInput `json:"case"`
	ReferenceDate string                 `json:"reference_date"`
}

// ResultDTO is one award line.
type ResultDTO struct {
	Item               string `json:"item"`
	ItemName           string `json:"item_name"`
	Amount             string `json:"amount"`
	CalculationDetails string `json:"calculation_details"`
	LegalBasis         string `json:"legal_basis,omitempty"`
	Notes              string `json:"notes,omitempty"`
}

// CalculationDTO is the full ordered result of a calculation.
type CalculationDTO struct {
	ReferenceDate string      `json:"reference_date"`
	Results       []ResultDTO `json:"results"`
}

// SaveCaseRequest stores a case's inputs under a name.
type SaveCaseRequest struct {
	Name string                 `json:"name"`
	Case compensation.CaseInput `json:"case"`
}

// CaseDTO is a saved case in API responses.
type CaseDTO struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Case      compensation.CaseInput `json:"case"`
	CreatedAt string                 `json:"created_at"`
	UpdatedAt string                 `json:"updated_at"`
}

// ConsolationDTO is a consolation-table probe result.
type ConsolationDTO struct {
	HospitalMonths   int    `json:"hospital_months"`
	OutpatientMonths int    `json:"outpatient_months"`
	Whiplash         bool   `json:"whiplash"`
	ManYen           int64  `json:"man_yen"`
	AmountYen        string `json:"amount_yen"`
	Note             string `json:"note,omitempty"`
}

// DisabilityDTO is a disability-grade probe result.
type DisabilityDTO struct {
	Grade           int    `json:"grade"`
	ConsolationYen  string `json:"consolation_yen"`
	LossRatePercent int64  `json:"loss_rate_percent"`
}

// CoefficientDTO is a discount-coefficient probe result.
type CoefficientDTO struct {
	Years       int    `json:"years"`
	Regime      string `json:"regime"`
	Coefficient string `json:"coefficient"`
}

// RateDTO is a statutory-rate probe result.
type RateDTO struct {
	Date        string `json:"date"`
	AnnualRate  string `json:"annual_rate"`
	RatePercent string `json:"rate_percent"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
