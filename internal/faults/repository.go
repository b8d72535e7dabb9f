package faults

import (
	"context"

	"github.com/gridops/faultdispatch/internal/domain"
)

// Repository defines the interface for incident storage.
type Repository interface {
	CreateIncident(ctx context.Context, incident *domain.Incident) error
	GetIncident(ctx context.Context, id string) (*domain.Incident, error)
	ListIncidents(ctx context.Context, filters IncidentFilters) ([]domain.Incident, error)

	// ListOpen returns all non-terminal incidents, assigned or not.
	ListOpen(ctx context.Context) ([]domain.Incident, error)
}

// IncidentFilters holds filter options for listing incidents.
type IncidentFilters struct {
	Status   *domain.IncidentStatus
	Severity *domain.Severity
	TeamID   *string
	Limit    int
	Offset   int
}
