package scheduler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gridops/faultdispatch/internal/pkg/httputil"
)

// Handler handles HTTP requests for planning.
type Handler struct {
	service *Service
}

// NewHandler creates a new scheduler handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers planning routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/plan", h.PreviewPlan)
	r.Post("/plan/apply", h.ApplyPlan)
}

// PreviewPlan handles POST /plan. It returns a plan computed over a fresh
// snapshot without committing anything, for display and confirmation.
func (h *Handler) PreviewPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.service.Preview(r.Context())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, nil)
		return
	}

	httputil.Success(w, http.StatusOK, plan)
}

// ApplyPlan handles POST /plan/apply. It plans and commits in one
// composed operation and returns both the plan and the per-entry apply
// outcome.
func (h *Handler) ApplyPlan(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Apply(r.Context())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, nil)
		return
	}

	httputil.Success(w, http.StatusOK, result)
}
