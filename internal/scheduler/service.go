package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/gridops/faultdispatch/internal/domain"
)

// SnapshotSource supplies a consistent snapshot of open incidents.
type SnapshotSource interface {
	OpenIncidents(ctx context.Context) ([]domain.Incident, error)
}

// TeamDirectory supplies a consistent snapshot of active teams.
type TeamDirectory interface {
	ActiveTeams(ctx context.Context) ([]domain.Team, error)
}

// Applier commits plan entries through the dispatch gateway.
type Applier interface {
	AssignMany(ctx context.Context, entries []domain.PlanEntry) domain.BulkResult
}

// Service composes snapshot, planning and dispatch into the
// plan-then-apply cycle. Each cycle re-reads current incident and team
// state; nothing is carried over between passes.
type Service struct {
	planner   *Planner
	snapshots SnapshotSource
	directory TeamDirectory
	applier   Applier
	nowFn     func() time.Time
}

// NewService creates a scheduler service.
func NewService(planner *Planner, snapshots SnapshotSource, directory TeamDirectory, applier Applier) *Service {
	return &Service{
		planner:   planner,
		snapshots: snapshots,
		directory: directory,
		applier:   applier,
		nowFn:     time.Now,
	}
}

// Preview runs one planning pass over a fresh snapshot without applying
// anything. The result is safe to discard.
func (s *Service) Preview(ctx context.Context) (*domain.PlanResult, error) {
	incidents, err := s.snapshots.OpenIncidents(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot incidents: %w", err)
	}

	teams, err := s.directory.ActiveTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot teams: %w", err)
	}

	result := s.planner.Plan(incidents, teams, s.nowFn())
	return &result, nil
}

// ApplyResult pairs a plan with the per-entry outcome of committing it.
type ApplyResult struct {
	Plan  *domain.PlanResult `json:"plan"`
	Apply domain.BulkResult  `json:"apply"`
}

// Apply runs one planning pass and commits the resulting entries. Entries
// are applied independently; a failed entry leaves its incident
// unassigned, so it simply re-enters the next pass.
func (s *Service) Apply(ctx context.Context) (*ApplyResult, error) {
	plan, err := s.Preview(ctx)
	if err != nil {
		return nil, err
	}

	return &ApplyResult{
		Plan:  plan,
		Apply: s.applier.AssignMany(ctx, plan.Entries),
	}, nil
}
