package dispatch

import (
	"context"
	"time"

	"github.com/gridops/faultdispatch/internal/domain"
)

// Repository defines the persistence surface of the dispatch gateway.
type Repository interface {
	GetIncident(ctx context.Context, id string) (*domain.Incident, error)
	GetTeam(ctx context.Context, id string) (*domain.Team, error)

	// SetAssignedTeam persists the assignment of an incident to a team.
	SetAssignedTeam(ctx context.Context, incidentID, teamID string) error

	// SetStatus persists a status change. holdPrev records the status an
	// on-hold incident resumes to; resolvedAt is set when the change
	// resolves the incident.
	SetStatus(ctx context.Context, incidentID string, status domain.IncidentStatus, holdPrev *domain.IncidentStatus, resolvedAt *time.Time) error
}
