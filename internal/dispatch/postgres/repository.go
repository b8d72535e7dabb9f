// Package postgres provides the PostgreSQL implementation of the dispatch
// gateway repository.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gridops/faultdispatch/internal/dispatch"
	"github.com/gridops/faultdispatch/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements the dispatch.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetIncident retrieves an incident by ID.
func (r *Repository) GetIncident(ctx context.Context, id string) (*domain.Incident, error) {
	query := `
		SELECT id, title, severity, status, asset_type, reported_at, reported_by,
		       assigned_team_id, hold_prev_status, latitude, longitude,
		       resolved_at, created_at, updated_at
		FROM incidents
		WHERE id = $1
	`
	var inc domain.Incident
	err := r.db.QueryRow(ctx, query, id).Scan(
		&inc.ID,
		&inc.Title,
		&inc.Severity,
		&inc.Status,
		&inc.AssetType,
		&inc.ReportedAt,
		&inc.ReportedBy,
		&inc.AssignedTeamID,
		&inc.HoldPrevStatus,
		&inc.Latitude,
		&inc.Longitude,
		&inc.ResolvedAt,
		&inc.CreatedAt,
		&inc.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dispatch.ErrIncidentNotFound
		}
		return nil, fmt.Errorf("get incident: %w", err)
	}

	return &inc, nil
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
			return nil, dispatch.ErrTeamNotFound
		}
		return nil, fmt.Errorf("get team: %w", err)
	}

	return &team, nil
}

// SetAssignedTeam persists the assignment of an incident to a team.
func (r *Repository) SetAssignedTeam(ctx context.Context, incidentID, teamID string) error {
	query := `
		UPDATE incidents
		SET assigned_team_id = $2, updated_at = now()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, incidentID, teamID)
	if err != nil {
		return fmt.Errorf("set assigned team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dispatch.ErrIncidentNotFound
	}
	return nil
}

// SetStatus persists a status change.
func (r *Repository) SetStatus(ctx context.Context, incidentID string, status domain.IncidentStatus, holdPrev *domain.IncidentStatus, resolvedAt *time.Time) error {
	query := `
		UPDATE incidents
		SET status = $2,
		    hold_prev_status = $3,
		    resolved_at = COALESCE($4, resolved_at),
		    updated_at = now()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, incidentID, status, holdPrev, resolvedAt)
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dispatch.ErrIncidentNotFound
	}
	return nil
}
