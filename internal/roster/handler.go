package roster

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gridops/faultdispatch/internal/pkg/httputil"
)

var errorMappings = []httputil.ErrorMapping{
	{Error: ErrTeamNotFound, Status: http.StatusNotFound, Message: "team not found"},
	{Error: ErrTeamExists, Status: http.StatusConflict, Message: "team with this name already exists"},
}

// Handler handles HTTP requests for the roster module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new roster handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers team routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/teams", func(r chi.Router) {
		r.Post("/", h.CreateTeam)
		r.Get("/", h.ListTeams)
		r.Get("/{id}", h.GetTeam)
		r.Patch("/{id}", h.UpdateTeam)
		r.Delete("/{id}", h.ArchiveTeam)
	})
}

// CreateTeamRequest represents request body for creating a team.
type CreateTeamRequest struct {
	Name      string   `json:"name" validate:"required,max=100"`
	SkillTags []string `json:"skill_tags" validate:"dive,required,max=50"`
	Capacity  int      `json:"capacity" validate:"gte=0"`
}

// CreateTeam handles POST /teams.
func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	team, err := h.service.CreateTeam(r.Context(), CreateTeamInput{
		Name:      req.Name,
		SkillTags: req.SkillTags,
		Capacity:  req.Capacity,
	})
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.Success(w, http.StatusCreated, team)
}

// ListTeams handles GET /teams.
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	filter := TeamFilter{
		IncludeArchived: r.URL.Query().Get("include_archived") == "true",
	}

	teams, err := h.service.ListTeams(r.Context(), filter)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.Success(w, http.StatusOK, teams)
}

// GetTeam handles GET /teams/{id}.
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.service.GetTeam(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.Success(w, http.StatusOK, team)
}

// UpdateTeamRequest represents request body for updating a team.
type UpdateTeamRequest struct {
	Name      *string  `json:"name" validate:"omitempty,max=100"`
	SkillTags []string `json:"skill_tags" validate:"omitempty,dive,required,max=50"`
	Capacity  *int     `json:"capacity" validate:"omitempty,gte=0"`
}

// UpdateTeam handles PATCH /teams/{id}.
func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	var req UpdateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	team, err := h.service.UpdateTeam(r.Context(), chi.URLParam(r, "id"), UpdateTeamInput{
		Name:      req.Name,
		SkillTags: req.SkillTags,
		Capacity:  req.Capacity,
	})
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.Success(w, http.StatusOK, team)
}

// ArchiveTeam handles DELETE /teams/{id}.
func (h *Handler) ArchiveTeam(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ArchiveTeam(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
