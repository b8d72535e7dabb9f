// Package postgres provides the PostgreSQL implementation of the faults
// repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gridops/faultdispatch/internal/domain"
	"github.com/gridops/faultdispatch/internal/faults"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const incidentColumns = `
	id, title, severity, status, asset_type, reported_at, reported_by,
	assigned_team_id, hold_prev_status, latitude, longitude,
	resolved_at, created_at, updated_at
`

// Repository implements the faults.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateIncident creates a new incident in the database.
func (r *Repository) CreateIncident(ctx context.Context, incident *domain.Incident) error {
	query := `
		INSERT INTO incidents (id, title, severity, status, asset_type, reported_at,
		                       reported_by, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		incident.ID,
		incident.Title,
		incident.Severity,
		incident.Status,
		incident.AssetType,
		incident.ReportedAt,
		incident.ReportedBy,
		incident.Latitude,
		incident.Longitude,
	).Scan(&incident.CreatedAt, &incident.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create incident: %w", err)
	}
	return nil
}

// GetIncident retrieves an incident by ID.
func (r *Repository) GetIncident(ctx context.Context, id string) (*domain.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1`

	var inc domain.Incident
	err := r.db.QueryRow(ctx, query, id).Scan(scanTargets(&inc)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, faults.ErrIncidentNotFound
		}
		return nil, fmt.Errorf("get incident: %w", err)
	}

	return &inc, nil
}

// ListIncidents retrieves incidents with optional filters, newest report
// first.
func (r *Repository) ListIncidents(ctx context.Context, filters faults.IncidentFilters) ([]domain.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE 1=1`
	args := make([]any, 0, 5)

	if filters.Status != nil {
		args = append(args, *filters.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filters.Severity != nil {
		args = append(args, *filters.Severity)
		query += fmt.Sprintf(" AND severity = $%d", len(args))
	}
	if filters.TeamID != nil {
		args = append(args, *filters.TeamID)
		query += fmt.Sprintf(" AND assigned_team_id = $%d", len(args))
	}

	query += " ORDER BY reported_at DESC, id"

	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filters.Offset > 0 {
		args = append(args, filters.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	return r.queryIncidents(ctx, query, args...)
}

// ListOpen returns all non-terminal incidents ordered by report time.
func (r *Repository) ListOpen(ctx context.Context) ([]domain.Incident, error) {
	query := `SELECT ` + incidentColumns + `
		FROM incidents
		WHERE status NOT IN ('resolved', 'closed', 'cancelled')
		ORDER BY reported_at, id`

	return r.queryIncidents(ctx, query)
}

func (r *Repository) queryIncidents(ctx context.Context, query string, args ...any) ([]domain.Incident, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]domain.Incident, 0)
	for rows.Next() {
		var inc domain.Incident
		if err := rows.Scan(scanTargets(&inc)...); err != nil {
			return nil, fmt.Errorf("scan incident: %w", err)
		}
		incidents = append(incidents, inc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate incidents: %w", err)
	}

	return incidents, nil
}

func scanTargets(inc *domain.Incident) []any {
	return []any{
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
	}
}
