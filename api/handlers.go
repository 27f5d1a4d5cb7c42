/*
handlers.go - HTTP API handlers for the compensation engine

PURPOSE:
  Exposes the calculation engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Calculation:
    POST   /api/calculate              Calculate an inline case

  Table browsing:
    GET    /api/tables/consolation     Probe the consolation matrix
    GET    /api/tables/disability/{grade}  Grade consolation + loss rate
    GET    /api/tables/coefficient     Discount coefficient by years/date
    GET    /api/rates/statutory        Statutory rate for a date

  Saved cases (inputs only, never results):
    GET    /api/cases                  List saved cases
    POST   /api/cases                  Save a case
    GET    /api/cases/{id}             Get a saved case
    DELETE /api/cases/{id}             Delete a saved case
    POST   /api/cases/{id}/calculate   Recalculate a saved case

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Case not found
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are
  public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/warp/compensation-engine/calendar"
	"github.com/warp/compensation-engine/compensation"
	"github.com/warp/compensation-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

var decimalHundred = decimal.NewFromInt(100)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Engine *compensation.Engine
	Tables *compensation.Tables
}

// NewHandler creates a handler around a store and an engine.
func NewHandler(store *sqlite.Store, engine *compensation.Engine) *Handler {
	return &Handler{
		Store:  store,
		Engine: engine,
		Tables: compensation.Shared(),
	}
}

// =============================================================================
// CALCULATION ENDPOINTS
// =============================================================================

// Calculate runs the engine on an inline case.
// POST /api/calculate
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	refDate, ok := h.parseReferenceDate(w, req.ReferenceDate)
	if !ok {
		return
	}

	results := h.Engine.CalculateAll(req.Case, refDate)
	writeJSON(w, http.StatusOK, toCalculationDTO(results, refDate))
}

func (h *Handler) parseReferenceDate(w http.ResponseWriter, raw string) (calendar.Date, bool) {
	if raw == "" {
		writeError(w, http.StatusBadRequest,
			"reference_date is required (the server never substitutes its own clock)", nil)
		return calendar.Date{}, false
	}
	refDate, err := calendar.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid reference_date format (use YYYY-MM-DD)", err)
		return calendar.Date{}, false
	}
	return refDate, true
}

// =============================================================================
// TABLE ENDPOINTS
// =============================================================================

// Consolation probes the treatment-duration consolation matrix.
// GET /api/tables/consolation?hospital=2&outpatient=4&whiplash=false
func (h *Handler) Consolation(w http.ResponseWriter, r *http.Request) {
	hospital, err := queryInt(r, "hospital")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hospital months", err)
		return
	}
	outpatient, err := queryInt(r, "outpatient")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid outpatient months", err)
		return
	}
	whiplash := r.URL.Query().Get("whiplash") == "true"

	lookup, err := h.Tables.InjuryTable(whiplash).Lookup(hospital, outpatient)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Table lookup failed", err)
		return
	}

	dto := ConsolationDTO{
		HospitalMonths:   hospital,
		OutpatientMonths: outpatient,
		Whiplash:         whiplash,
		ManYen:           lookup.Value,
		Note:             lookup.Note,
	}
	if lookup.Found {
		dto.AmountYen = strconv.FormatInt(lookup.Value*10_000, 10)
	} else {
		dto.AmountYen = "0"
	}
	writeJSON(w, http.StatusOK, dto)
}

// Disability returns grade consolation and loss rate.
// GET /api/tables/disability/{grade}
func (h *Handler) Disability(w http.ResponseWriter, r *http.Request) {
	grade, err := strconv.Atoi(chi.URLParam(r, "grade"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid grade", err)
		return
	}

	consolation, err := h.Tables.DisabilityConsolation().Lookup(grade)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown disability grade", err)
		return
	}
	lossRate, err := h.Tables.LossRate().Lookup(grade)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown disability grade", err)
		return
	}

	writeJSON(w, http.StatusOK, DisabilityDTO{
		Grade:           consolation.Key,
		ConsolationYen:  strconv.FormatInt(consolation.Value*10_000, 10),
		LossRatePercent: lossRate.Value,
	})
}

// Coefficient returns the present-value coefficient for a loss period.
// GET /api/tables/coefficient?years=20&date=2024-06-01
func (h *Handler) Coefficient(w http.ResponseWriter, r *http.Request) {
	years, err := queryInt(r, "years")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid years", err)
		return
	}
	refDate, ok := h.parseReferenceDate(w, r.URL.Query().Get("date"))
	if !ok {
		return
	}

	coefficient, regime := h.Tables.Coefficient(years, refDate)
	writeJSON(w, http.StatusOK, CoefficientDTO{
		Years:       years,
		Regime:      string(regime),
		Coefficient: coefficient.String(),
	})
}

// StatutoryRate returns the legal interest rate for an accrual date.
// GET /api/rates/statutory?date=2020-04-01
func (h *Handler) StatutoryRate(w http.ResponseWriter, r *http.Request) {
	date, ok := h.parseReferenceDate(w, r.URL.Query().Get("date"))
	if !ok {
		return
	}

	rate, err := compensation.StatutoryRate(date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Rate selection failed", err)
		return
	}
	writeJSON(w, http.StatusOK, RateDTO{
		Date:        date.String(),
		AnnualRate:  rate.String(),
		RatePercent: rate.Mul(decimalHundred).String(),
	})
}

// =============================================================================
// SAVED CASE ENDPOINTS
// =============================================================================

// ListCases returns every saved case.
// GET /api/cases
func (h *Handler) ListCases(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListCases(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list cases", err)
		return
	}

	dtos := make([]CaseDTO, 0, len(records))
	for _, rec := range records {
		dtos = append(dtos, toCaseDTO(rec))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveCase stores a case's inputs.
// POST /api/cases
func (h *Handler) SaveCase(w http.ResponseWriter, r *http.Request) {
	var req SaveCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Case name is required", nil)
		return
	}

	rec := sqlite.CaseRecord{ID: newID(), Name: req.Name, Input: req.Case}
	if err := h.Store.SaveCase(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save case", err)
		return
	}

	saved, err := h.Store.GetCase(r.Context(), rec.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load saved case", err)
		return
	}
	writeJSON(w, http.StatusCreated, toCaseDTO(saved))
}

// GetCase returns one saved case.
// GET /api/cases/{id}
func (h *Handler) GetCase(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.GetCase(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, sqlite.ErrCaseNotFound) {
			writeError(w, http.StatusNotFound, "Case not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get case", err)
		return
	}
	writeJSON(w, http.StatusOK, toCaseDTO(rec))
}

// DeleteCase removes a saved case.
// DELETE /api/cases/{id}
func (h *Handler) DeleteCase(w http.ResponseWriter, r *http.Request) {
	err := h.Store.DeleteCase(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, sqlite.ErrCaseNotFound) {
			writeError(w, http.StatusNotFound, "Case not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete case", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CalculateCase recalculates a saved case.
// POST /api/cases/{id}/calculate?reference_date=2024-06-01
func (h *Handler) CalculateCase(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.GetCase(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, sqlite.ErrCaseNotFound) {
			writeError(w, http.StatusNotFound, "Case not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get case", err)
		return
	}

	refDate, ok := h.parseReferenceDate(w, r.URL.Query().Get("reference_date"))
	if !ok {
		return
	}

	results := h.Engine.CalculateAll(rec.Input, refDate)
	writeJSON(w, http.StatusOK, toCalculationDTO(results, refDate))
}

// =============================================================================
// HELPERS
// =============================================================================

func toCalculationDTO(rs *compensation.ResultSet, refDate calendar.Date) CalculationDTO {
	dto := CalculationDTO{ReferenceDate: refDate.String()}
	for _, key := range rs.Keys() {
		res, _ := rs.Get(key)
		dto.Results = append(dto.Results, ResultDTO{
			Item:               string(key),
			ItemName:           res.ItemName,
			Amount:             res.Amount.String(),
			CalculationDetails: res.CalculationDetails,
			LegalBasis:         res.LegalBasis,
			Notes:              res.Notes,
		})
	}
	return dto
}

func toCaseDTO(rec sqlite.CaseRecord) CaseDTO {
	return CaseDTO{
		ID:        rec.ID,
		Name:      rec.Name,
		Case:      rec.Input,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt: rec.UpdatedAt.Format(time.RFC3339),
	}
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func newID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return "case-" + hex.EncodeToString(b)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
