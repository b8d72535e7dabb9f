package faults

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gridops/faultdispatch/internal/domain"
	"github.com/gridops/faultdispatch/internal/pkg/httputil"
)

var errorMappings = []httputil.ErrorMapping{
	{Error: ErrIncidentNotFound, Status: http.StatusNotFound, Message: "incident not found"},
	{Error: ErrInvalidSeverity, Status: http.StatusBadRequest},
	{Error: ErrInvalidInitialStatus, Status: http.StatusBadRequest, Message: "initial status must be pending or active"},
}

// Handler handles HTTP requests for the faults module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new faults handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers fault routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/incidents", h.ReportIncident)
	r.Get("/incidents", h.ListIncidents)
	r.Get("/incidents/{id}", h.GetIncident)
}

// ReportIncidentRequest represents request body for reporting a fault.
type ReportIncidentRequest struct {
	Title      string     `json:"title" validate:"required,max=200"`
	Severity   string     `json:"severity" validate:"required,oneof=critical major moderate minor"`
	Status     string     `json:"status" validate:"omitempty,oneof=pending active"`
	AssetType  string     `json:"asset_type" validate:"max=50"`
	ReportedAt *time.Time `json:"reported_at"`
	ReportedBy string     `json:"reported_by" validate:"max=100"`
	Latitude   *float64   `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude  *float64   `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

// ReportIncident handles POST /incidents.
func (h *Handler) ReportIncident(w http.ResponseWriter, r *http.Request) {
	var req ReportIncidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	incident, err := h.service.Report(r.Context(), ReportIncidentInput{
		Title:      req.Title,
		Severity:   domain.Severity(req.Severity),
		Status:     domain.IncidentStatus(req.Status),
		AssetType:  req.AssetType,
		ReportedAt: req.ReportedAt,
		ReportedBy: req.ReportedBy,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	})
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.Success(w, http.StatusCreated, incident)
}

// ListIncidents handles GET /incidents.
func (h *Handler) ListIncidents(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	views, err := h.service.List(r.Context(), filters)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.Success(w, http.StatusOK, views)
}

// GetIncident handles GET /incidents/{id}.
func (h *Handler) GetIncident(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.Success(w, http.StatusOK, view)
}

func parseFilters(r *http.Request) (IncidentFilters, error) {
	var filters IncidentFilters
	q := r.URL.Query()

	if v := q.Get("status"); v != "" {
		status := domain.IncidentStatus(v)
		filters.Status = &status
	}
	if v := q.Get("severity"); v != "" {
		severity := domain.Severity(v)
		filters.Severity = &severity
	}
	if v := q.Get("team_id"); v != "" {
		filters.TeamID = &v
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return filters, errInvalidPagination
		}
		filters.Limit = limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return filters, errInvalidPagination
		}
		filters.Offset = offset
	}

	return filters, nil
}
