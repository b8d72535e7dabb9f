// Package dispatch is the mutation gateway: the only component permitted
// to change incident assignment and status. All mutations are idempotent
// or validated, and bulk variants apply entries independently.
package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gridops/faultdispatch/internal/domain"
	"golang.org/x/time/rate"
)

// StatusChange is one entry of a bulk status mutation.
type StatusChange struct {
	IncidentID string                `json:"incident_id"`
	Status     domain.IncidentStatus `json:"status"`
}

// Service implements the mutation gateway.
type Service struct {
	repo    Repository
	limiter *rate.Limiter
	nowFn   func() time.Time
}

// NewService creates a dispatch service. limiter paces outbound
// persistence calls during bulk operations; nil means unlimited.
func NewService(repo Repository, limiter *rate.Limiter) *Service {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &Service{
		repo:    repo,
		limiter: limiter,
		nowFn:   time.Now,
	}
}

// Assign assigns an incident to a team. The call is idempotent: repeating
// it with the same pair is a no-op success, so callers may retry freely.
func (s *Service) Assign(ctx context.Context, incidentID, teamID string) error {
	start := s.nowFn()

	err := s.assign(ctx, incidentID, teamID)
	recordMutation("assign", err, time.Since(start))
	return err
}

func (s *Service) assign(ctx context.Context, incidentID, teamID string) error {
	incident, err := s.repo.GetIncident(ctx, incidentID)
	if err != nil {
		return err
	}

	if incident.Status.IsTerminal() {
		return ErrIncidentTerminal
	}

	if _, err := s.repo.GetTeam(ctx, teamID); err != nil {
		return err
	}

	if incident.AssignedTeamID != nil && *incident.AssignedTeamID == teamID {
		return nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	if err := s.repo.SetAssignedTeam(ctx, incidentID, teamID); err != nil {
		return fmt.Errorf("assign incident %s: %w", incidentID, err)
	}

	return nil
}

// SetStatus changes the status of an incident. The transition is
// validated against the incident lifecycle before anything is written;
// invalid transitions are rejected without mutating state.
func (s *Service) SetStatus(ctx context.Context, incidentID string, status domain.IncidentStatus) error {
	start := s.nowFn()

	err := s.setStatus(ctx, incidentID, status)
	recordMutation("set_status", err, time.Since(start))
	return err
}

func (s *Service) setStatus(ctx context.Context, incidentID string, status domain.IncidentStatus) error {
	if !status.IsValid() {
		return ErrUnknownStatus
	}

	incident, err := s.repo.GetIncident(ctx, incidentID)
	if err != nil {
		return err
	}

	if !domain.CanTransition(incident.Status, status, incident.HoldPrevStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, incident.Status, status)
	}

	var holdPrev *domain.IncidentStatus
	if status == domain.IncidentStatusOnHold {
		prev := incident.Status
		holdPrev = &prev
	}

	var resolvedAt *time.Time
	if status == domain.IncidentStatusResolved {
		now := s.nowFn()
		resolvedAt = &now
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	if err := s.repo.SetStatus(ctx, incidentID, status, holdPrev, resolvedAt); err != nil {
		return fmt.Errorf("set status of incident %s: %w", incidentID, err)
	}

	return nil
}

// AssignMany applies plan entries independently and concurrently. One
// failed entry never blocks or rolls back the others; the result lists
// every failure so callers can retry just the failed subset.
func (s *Service) AssignMany(ctx context.Context, entries []domain.PlanEntry) domain.BulkResult {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result domain.BulkResult
	)

	for _, entry := range entries {
		wg.Add(1)
		go func(entry domain.PlanEntry) {
			defer wg.Done()

			err := s.Assign(ctx, entry.IncidentID, entry.TeamID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, domain.ItemFailure{
					ID:     entry.IncidentID,
					Reason: err.Error(),
				})
				return
			}
			result.Succeeded++
		}(entry)
	}

	wg.Wait()
	return result
}

// SetStatusMany applies status changes independently and concurrently
// with the same partial-failure semantics as AssignMany.
func (s *Service) SetStatusMany(ctx context.Context, changes []StatusChange) domain.BulkResult {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result domain.BulkResult
	)

	for _, change := range changes {
		wg.Add(1)
		go func(change StatusChange) {
			defer wg.Done()

			err := s.SetStatus(ctx, change.IncidentID, change.Status)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, domain.ItemFailure{
					ID:     change.IncidentID,
					Reason: err.Error(),
				})
				return
			}
			result.Succeeded++
		}(change)
	}

	wg.Wait()
	return result
}
