package dispatch

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gridops/faultdispatch/internal/domain"
	"github.com/gridops/faultdispatch/internal/pkg/httputil"
)

var errorMappings = []httputil.ErrorMapping{
	{Error: ErrIncidentNotFound, Status: http.StatusNotFound, Message: "incident not found"},
	{Error: ErrTeamNotFound, Status: http.StatusNotFound, Message: "team not found"},
	{Error: ErrUnknownStatus, Status: http.StatusBadRequest, Message: "unknown incident status"},
	{Error: ErrInvalidTransition, Status: http.StatusConflict},
	{Error: ErrIncidentTerminal, Status: http.StatusConflict, Message: "incident is in a terminal status"},
}

// Handler handles HTTP requests for the dispatch gateway.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new dispatch handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers dispatch routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/incidents/{id}/assign", h.Assign)
	r.Post("/incidents/{id}/status", h.SetStatus)
	r.Post("/incidents/assign/bulk", h.AssignMany)
	r.Post("/incidents/status/bulk", h.SetStatusMany)
}

// AssignRequest represents request body for assigning an incident.
type AssignRequest struct {
	TeamID string `json:"team_id" validate:"required"`
}

// Assign handles POST /incidents/{id}/assign.
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	incidentID := chi.URLParam(r, "id")

	var req AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	if err := h.service.Assign(r.Context(), incidentID, req.TeamID); err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetStatusRequest represents request body for a status change.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SetStatus handles POST /incidents/{id}/status.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	incidentID := chi.URLParam(r, "id")

	var req SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	if err := h.service.SetStatus(r.Context(), incidentID, domain.IncidentStatus(req.Status)); err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AssignManyRequest represents request body for bulk assignment.
type AssignManyRequest struct {
	Assignments []struct {
		IncidentID string `json:"incident_id" validate:"required"`
		TeamID     string `json:"team_id" validate:"required"`
	} `json:"assignments" validate:"required,min=1,dive"`
}

// AssignMany handles POST /incidents/assign/bulk.
func (h *Handler) AssignMany(w http.ResponseWriter, r *http.Request) {
	var req AssignManyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	entries := make([]domain.PlanEntry, 0, len(req.Assignments))
	for _, a := range req.Assignments {
		entries = append(entries, domain.PlanEntry{IncidentID: a.IncidentID, TeamID: a.TeamID})
	}

	httputil.Success(w, http.StatusOK, h.service.AssignMany(r.Context(), entries))
}

// SetStatusManyRequest represents request body for bulk status changes.
type SetStatusManyRequest struct {
	Changes []struct {
		IncidentID string `json:"incident_id" validate:"required"`
		Status     string `json:"status" validate:"required"`
	} `json:"changes" validate:"required,min=1,dive"`
}

// SetStatusMany handles POST /incidents/status/bulk.
func (h *Handler) SetStatusMany(w http.ResponseWriter, r *http.Request) {
	var req SetStatusManyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	changes := make([]StatusChange, 0, len(req.Changes))
	for _, c := range req.Changes {
		changes = append(changes, StatusChange{IncidentID: c.IncidentID, Status: domain.IncidentStatus(c.Status)})
	}

	httputil.Success(w, http.StatusOK, h.service.SetStatusMany(r.Context(), changes))
}
