// Package faults covers incident intake and browsing. It is the snapshot
// source the scheduler plans from; it never mutates assignment or status
// itself.
package faults

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gridops/faultdispatch/internal/domain"
	"github.com/gridops/faultdispatch/internal/scheduler"
	"github.com/gridops/faultdispatch/internal/sla"
)

// Service implements incident intake and read-side business logic.
type Service struct {
	repo   Repository
	policy domain.SLAPolicy
	nowFn  func() time.Time
}

// NewService creates a new faults service.
func NewService(repo Repository, policy domain.SLAPolicy) *Service {
	return &Service{
		repo:   repo,
		policy: policy,
		nowFn:  time.Now,
	}
}

// ReportIncidentInput holds data for reporting an incident.
type ReportIncidentInput struct {
	Title      string
	Severity   domain.Severity
	Status     domain.IncidentStatus // defaults to pending
	AssetType  string
	ReportedAt *time.Time // defaults to now
	ReportedBy string
	Latitude   *float64
	Longitude  *float64
}

// Report creates a new incident from the external reporting flow.
func (s *Service) Report(ctx context.Context, input ReportIncidentInput) (*domain.Incident, error) {
	if !input.Severity.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSeverity, input.Severity)
	}

	status := input.Status
	if status == "" {
		status = domain.IncidentStatusPending
	}
	if !status.IsInitial() {
		return nil, ErrInvalidInitialStatus
	}

	reportedAt := s.nowFn()
	if input.ReportedAt != nil {
		reportedAt = *input.ReportedAt
	}

	incident := &domain.Incident{
		ID:         uuid.New().String(),
		Title:      input.Title,
		Severity:   input.Severity,
		Status:     status,
		AssetType:  input.AssetType,
		ReportedAt: reportedAt,
		ReportedBy: input.ReportedBy,
		Latitude:   input.Latitude,
		Longitude:  input.Longitude,
	}

	if err := s.repo.CreateIncident(ctx, incident); err != nil {
		return nil, fmt.Errorf("create incident: %w", err)
	}

	return incident, nil
}

// IncidentView decorates an incident with its derived urgency. SLA state
// is never stored: it is recomputed against the clock on every read.
type IncidentView struct {
	domain.Incident
	SLA   sla.Evaluation `json:"sla"`
	Score int            `json:"score"`
}

// Get retrieves one incident with derived urgency.
func (s *Service) Get(ctx context.Context, id string) (*IncidentView, error) {
	incident, err := s.repo.GetIncident(ctx, id)
	if err != nil {
		return nil, err
	}

	view := s.view(*incident)
	return &view, nil
}

// List retrieves incidents with derived urgency, applying optional
// filters.
func (s *Service) List(ctx context.Context, filters IncidentFilters) ([]IncidentView, error) {
	incidents, err := s.repo.ListIncidents(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}

	views := make([]IncidentView, 0, len(incidents))
	for _, inc := range incidents {
		views = append(views, s.view(inc))
	}
	return views, nil
}

// OpenIncidents returns the planning snapshot: every non-terminal
// incident, assigned or not.
func (s *Service) OpenIncidents(ctx context.Context) ([]domain.Incident, error) {
	return s.repo.ListOpen(ctx)
}

// SLABreakdown counts open incidents per urgency state and severity, for
// metrics. Every state and severity combination is present in the result
// so stale gauge values get reset to zero.
func (s *Service) SLABreakdown(ctx context.Context) (map[sla.State]map[domain.Severity]int, error) {
	incidents, err := s.repo.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("list open incidents: %w", err)
	}

	counts := make(map[sla.State]map[domain.Severity]int, 3)
	for _, state := range []sla.State{sla.StateOK, sla.StateAtRisk, sla.StateBreached} {
		counts[state] = map[domain.Severity]int{
			domain.SeverityCritical: 0,
			domain.SeverityMajor:    0,
			domain.SeverityModerate: 0,
			domain.SeverityMinor:    0,
		}
	}

	now := s.nowFn()
	for _, inc := range incidents {
		eval := sla.Evaluate(inc.Severity, inc.ReportedAt, now, s.policy)
		counts[eval.State][inc.Severity]++
	}
	return counts, nil
}

// view derives the urgency of one incident. Terminal incidents evaluate
// against the instant they left the lifecycle instead of the live clock,
// so a resolved incident's SLA state is frozen.
func (s *Service) view(incident domain.Incident) IncidentView {
	now := s.nowFn()
	if incident.Status.IsTerminal() {
		if incident.ResolvedAt != nil {
			now = *incident.ResolvedAt
		} else {
			now = incident.UpdatedAt
		}
	}

	eval := sla.Evaluate(incident.Severity, incident.ReportedAt, now, s.policy)
	return IncidentView{
		Incident: incident,
		SLA:      eval,
		Score:    scheduler.Score(incident.Severity, eval.MinutesLeft),
	}
}
