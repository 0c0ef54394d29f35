package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tfield/travel-planner/internal/domain"
	"github.com/tfield/travel-planner/internal/enrich"
	"github.com/tfield/travel-planner/internal/service"
)

// planResponse is a plan as the API returns it. When no cover image has been
// fetched, coverPlaceholder carries the deterministic gradient key derived
// from the city name; it is computed per response and never stored.
type planResponse struct {
	domain.TravelPlan
	CoverPlaceholder string `json:"coverPlaceholder,omitempty"`
}

func toPlanResponse(p domain.TravelPlan) planResponse {
	resp := planResponse{TravelPlan: p}
	if p.CoverImage == "" {
		resp.CoverPlaceholder = enrich.PlaceholderKey(p.City)
	}
	return resp
}

// createPlanRequest is the body for POST /plans.
type createPlanRequest struct {
	City        string      `json:"city"`
	Country     string      `json:"country"`
	Description string      `json:"description"`
	StartDate   domain.Date `json:"startDate"`
	EndDate     domain.Date `json:"endDate"`
}

// updatePlanRequest is the body for PATCH /plans/{planID}.
// Absent fields are left untouched.
type updatePlanRequest struct {
	City        *string      `json:"city"`
	Country     *string      `json:"country"`
	Description *string      `json:"description"`
	CoverImage  *string      `json:"coverImage"`
	Summary     *string      `json:"summary"`
	StartDate   *domain.Date `json:"startDate"`
	EndDate     *domain.Date `json:"endDate"`
}

// addDayRequest is the body for POST /plans/{planID}/days.
type addDayRequest struct {
	Date domain.Date `json:"date"`
}

// paginationMeta echoes the applied paging parameters alongside list data.
type paginationMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type listPlansResponse struct {
	Data       []planResponse `json:"data"`
	Pagination paginationMeta `json:"pagination"`
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// pathID parses the named URL parameter as a UUID.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// queryInt returns the named query parameter as *int, or nil when absent or
// malformed. Bad paging input falls back to the defaults rather than erroring.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// CreatePlan handles POST /plans.
func (s *Server) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req createPlanRequest
	if err := decodeBody(r, &req); err != nil {
		s.unprocessable(w, "invalid request body")
		return
	}

	created, err := s.plans.Create(r.Context(), service.PlanForm{
		City:        req.City,
		Country:     req.Country,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		s.serviceError(w, err, "plan not found")
		return
	}

	if s.enrich != nil {
		s.enrich.Kick(created)
	}
	s.writeJSON(w, http.StatusCreated, toPlanResponse(created))
}

// ListPlans handles GET /plans.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListPlans(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	plans, total, err := s.plans.ListPaged(r.Context(), params)
	if err != nil {
		s.serviceError(w, err, "plan not found")
		return
	}

	data := make([]planResponse, len(plans))
	for i, p := range plans {
		data[i] = toPlanResponse(p)
	}
	s.writeJSON(w, http.StatusOK, listPlansResponse{
		Data:       data,
		Pagination: paginationMeta{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// GetPlan handles GET /plans/{planID}.
// Fetching a plan that is still missing its summary or cover image kicks off
// background enrichment; the response never waits for it.
func (s *Server) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "planID")
	if err != nil {
		s.unprocessable(w, "invalid plan id")
		return
	}

	plan, err := s.plans.GetByID(r.Context(), id)
	if err != nil {
		s.serviceError(w, err, "plan not found")
		return
	}

	if s.enrich != nil && (plan.Summary == "" || plan.CoverImage == "") {
		s.enrich.Kick(plan)
	}
	s.writeJSON(w, http.StatusOK, toPlanResponse(plan))
}

// UpdatePlan handles PATCH /plans/{planID}.
func (s *Server) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "planID")
	if err != nil {
		s.unprocessable(w, "invalid plan id")
		return
	}
	var req updatePlanRequest
	if err := decodeBody(r, &req); err != nil {
		s.unprocessable(w, "invalid request body")
		return
	}

	updated, err := s.plans.Update(r.Context(), id, service.PlanPatch{
		City:        req.City,
		Country:     req.Country,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Summary:     req.Summary,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		s.serviceError(w, err, "plan not found")
		return
	}

	s.writeJSON(w, http.StatusOK, toPlanResponse(updated))
}

// DeletePlan handles DELETE /plans/{planID}.
// Deleting an absent plan still returns 204; the operation is idempotent.
func (s *Server) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "planID")
	if err != nil {
		s.unprocessable(w, "invalid plan id")
		return
	}

	if err := s.plans.Delete(r.Context(), id); err != nil {
		s.serviceError(w, err, "plan not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddDay handles POST /plans/{planID}/days.
// Returns the whole plan so the caller sees the new day in sorted position.
func (s *Server) AddDay(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "planID")
	if err != nil {
		s.unprocessable(w, "invalid plan id")
		return
	}
	var req addDayRequest
	if err := decodeBody(r, &req); err != nil {
		s.unprocessable(w, "invalid request body")
		return
	}
	if req.Date.IsZero() {
		s.unprocessable(w, "date is required")
		return
	}

	updated, err := s.plans.AddDay(r.Context(), id, req.Date)
	if err != nil {
		s.serviceError(w, err, "plan not found")
		return
	}
	s.writeJSON(w, http.StatusCreated, toPlanResponse(updated))
}

// RemoveDay handles DELETE /plans/{planID}/days/{dayID}.
// The day's activities are removed with it.
func (s *Server) RemoveDay(w http.ResponseWriter, r *http.Request) {
	planID, err := pathID(r, "planID")
	if err != nil {
		s.unprocessable(w, "invalid plan id")
		return
	}
	dayID, err := pathID(r, "dayID")
	if err != nil {
		s.unprocessable(w, "invalid day id")
		return
	}

	updated, err := s.plans.RemoveDay(r.Context(), planID, dayID)
	if err != nil {
		s.serviceError(w, err, "plan not found")
		return
	}
	s.writeJSON(w, http.StatusOK, toPlanResponse(updated))
}
