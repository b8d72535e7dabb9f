// Package postgres provides the PostgreSQL implementation of the roster
// repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gridops/faultdispatch/internal/domain"
	"github.com/gridops/faultdispatch/internal/roster"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements the roster.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateTeam creates a new team in the database.
func (r *Repository) CreateTeam(ctx context.Context, team *domain.Team) error {
	query := `
		INSERT INTO teams (id, name, slug, skill_tags, capacity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		team.ID,
		team.Name,
		team.Slug,
		team.SkillTags,
		team.Capacity,
	).Scan(&team.CreatedAt, &team.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return roster.ErrTeamExists
		}
		return fmt.Errorf("create team: %w", err)
	}
	return nil
}

// GetTeam retrieves a team by ID.
func (r *Repository) GetTeam(ctx context.Context, id string) (*domain.Team, error) {
	query := `
		SELECT id, name, slug, skill_tags, capacity, created_at, updated_at, archived_at
		FROM teams
		WHERE id = $1
	`
	var team domain.Team
	err := r.db.QueryRow(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.Slug,
		&team.SkillTags,
		&team.Capacity,
		&team.CreatedAt,
		&team.UpdatedAt,
		&team.ArchivedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, roster.ErrTeamNotFound
		}
		return nil, fmt.Errorf("get team: %w", err)
	}

	return &team, nil
}

// ListTeams retrieves teams ordered by name.
func (r *Repository) ListTeams(ctx context.Context, filter roster.TeamFilter) ([]domain.Team, error) {
	query := `
		SELECT id, name, slug, skill_tags, capacity, created_at, updated_at, archived_at
		FROM teams
	`
	if !filter.IncludeArchived {
		query += " WHERE archived_at IS NULL"
	}
	query += " ORDER BY name, id"

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]domain.Team, 0)
	for rows.Next() {
		var team domain.Team
		err := rows.Scan(
			&team.ID,
			&team.Name,
			&team.Slug,
			&team.SkillTags,
			&team.Capacity,
			&team.CreatedAt,
			&team.UpdatedAt,
			&team.ArchivedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, team)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}

	return teams, nil
}

// UpdateTeam updates a team's name, slug, skills and capacity.
func (r *Repository) UpdateTeam(ctx context.Context, team *domain.Team) error {
	query := `
		UPDATE teams
		SET name = $2, slug = $3, skill_tags = $4, capacity = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		team.ID,
		team.Name,
		team.Slug,
		team.SkillTags,
		team.Capacity,
	).Scan(&team.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roster.ErrTeamNotFound
		}
		if isUniqueViolation(err) {
			return roster.ErrTeamExists
		}
		return fmt.Errorf("update team: %w", err)
	}
	return nil
}

// ArchiveTeam marks a team as archived.
func (r *Repository) ArchiveTeam(ctx context.Context, id string) error {
	query := `
		UPDATE teams
		SET archived_at = now(), updated_at = now()
		WHERE id = $1 AND archived_at IS NULL
	`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("archive team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return roster.ErrTeamNotFound
	}
	return nil
}

// isUniqueViolation checks for a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
