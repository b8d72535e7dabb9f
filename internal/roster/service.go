// Package roster is the team directory: the authoritative source of team
// skill tags and capacity. Planning passes only ever read cloned
// snapshots from here.
package roster

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gridops/faultdispatch/internal/domain"
)

// Service implements team directory business logic.
type Service struct {
	repo Repository
}

// NewService creates a new roster service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateTeamInput holds data for creating a team.
type CreateTeamInput struct {
	Name      string
	SkillTags []string
	Capacity  int
}

// CreateTeam creates a new team with a slug derived from its name.
func (s *Service) CreateTeam(ctx context.Context, input CreateTeamInput) (*domain.Team, error) {
	team := &domain.Team{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Slug:      Slugify(input.Name),
		SkillTags: normalizeTags(input.SkillTags),
		Capacity:  input.Capacity,
	}

	if err := s.repo.CreateTeam(ctx, team); err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}

	return team, nil
}

// GetTeam retrieves a team by ID.
func (s *Service) GetTeam(ctx context.Context, id string) (*domain.Team, error) {
	return s.repo.GetTeam(ctx, id)
}

// ListTeams retrieves teams, optionally including archived ones.
func (s *Service) ListTeams(ctx context.Context, filter TeamFilter) ([]domain.Team, error) {
	return s.repo.ListTeams(ctx, filter)
}

// ActiveTeams returns the planning snapshot: all non-archived teams.
func (s *Service) ActiveTeams(ctx context.Context) ([]domain.Team, error) {
	return s.repo.ListTeams(ctx, TeamFilter{})
}

// UpdateTeamInput holds data for updating a team. Nil fields are left
// unchanged.
type UpdateTeamInput struct {
	Name      *string
	SkillTags []string
	Capacity  *int
}

// UpdateTeam updates a team's name, skills or capacity.
func (s *Service) UpdateTeam(ctx context.Context, id string, input UpdateTeamInput) (*domain.Team, error) {
	team, err := s.repo.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		team.Name = *input.Name
		team.Slug = Slugify(*input.Name)
	}
	if input.SkillTags != nil {
		team.SkillTags = normalizeTags(input.SkillTags)
	}
	if input.Capacity != nil {
		team.Capacity = *input.Capacity
	}

	if err := s.repo.UpdateTeam(ctx, team); err != nil {
		return nil, fmt.Errorf("update team: %w", err)
	}

	return team, nil
}

// ArchiveTeam removes a team from planning without deleting its history.
func (s *Service) ArchiveTeam(ctx context.Context, id string) error {
	return s.repo.ArchiveTeam(ctx, id)
}

// normalizeTags deduplicates skill tags preserving order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
