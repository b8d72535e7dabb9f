package roster

import (
	"context"

	"github.com/gridops/faultdispatch/internal/domain"
)

// Repository defines the interface for team storage.
type Repository interface {
	CreateTeam(ctx context.Context, team *domain.Team) error
	GetTeam(ctx context.Context, id string) (*domain.Team, error)
	ListTeams(ctx context.Context, filter TeamFilter) ([]domain.Team, error)
	UpdateTeam(ctx context.Context, team *domain.Team) error
	ArchiveTeam(ctx context.Context, id string) error
}

// TeamFilter holds filter options for listing teams.
type TeamFilter struct {
	IncludeArchived bool
}
