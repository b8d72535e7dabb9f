package domain

import "time"

// Severity represents the severity of a fault.
type Severity string

// Severity levels, highest first.
const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityModerate Severity = "moderate"
	SeverityMinor    Severity = "minor"
)

// IsValid checks if the severity is valid.
func (s Severity) IsValid() bool {
	return s == SeverityCritical || s == SeverityMajor ||
		s == SeverityModerate || s == SeverityMinor
}

// Weight returns the ranking weight of the severity.
// Unknown severities weigh the same as minor.
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityMajor:
		return 3
	case SeverityModerate:
		return 2
	default:
		return 1
	}
}

// IncidentStatus represents the current status of an incident.
type IncidentStatus string

// Incident statuses.
const (
	IncidentStatusPending    IncidentStatus = "pending"
	IncidentStatusActive     IncidentStatus = "active"
	IncidentStatusInProgress IncidentStatus = "in_progress"
	IncidentStatusOnHold     IncidentStatus = "on_hold"
	IncidentStatusEscalated  IncidentStatus = "escalated"
	IncidentStatusResolved   IncidentStatus = "resolved"
	IncidentStatusClosed     IncidentStatus = "closed"
	IncidentStatusCancelled  IncidentStatus = "cancelled"
)

// IsValid checks if the status is a known incident status.
func (s IncidentStatus) IsValid() bool {
	switch s {
	case IncidentStatusPending, IncidentStatusActive, IncidentStatusInProgress,
		IncidentStatusOnHold, IncidentStatusEscalated, IncidentStatusResolved,
		IncidentStatusClosed, IncidentStatusCancelled:
		return true
	}
	return false
}

// IsTerminal checks if the status ends the incident lifecycle.
// Terminal incidents are never planning candidates and accept no
// further status changes except resolved -> closed.
func (s IncidentStatus) IsTerminal() bool {
	return s == IncidentStatusResolved || s == IncidentStatusClosed || s == IncidentStatusCancelled
}

// IsInitial checks if the status is valid for a newly reported incident.
func (s IncidentStatus) IsInitial() bool {
	return s == IncidentStatusPending || s == IncidentStatusActive
}

// CanTransition validates a status change against the incident lifecycle.
// holdPrev is the status the incident held before entering on_hold; it is
// only consulted when transitioning out of on_hold.
//
// Lifecycle: {pending,active} -> in_progress -> resolved -> closed.
// Any non-terminal status may move to on_hold, escalated or cancelled.
// on_hold returns to the status held before the hold. Same-state changes
// are rejected.
func CanTransition(from, to IncidentStatus, holdPrev *IncidentStatus) bool {
	if !from.IsValid() || !to.IsValid() || from == to {
		return false
	}

	if from == IncidentStatusOnHold {
		if to == IncidentStatusEscalated || to == IncidentStatusCancelled {
			return true
		}
		return holdPrev != nil && to == *holdPrev && !holdPrev.IsTerminal()
	}

	switch to {
	case IncidentStatusInProgress:
		return from == IncidentStatusPending || from == IncidentStatusActive
	case IncidentStatusResolved:
		return from == IncidentStatusInProgress
	case IncidentStatusOnHold, IncidentStatusEscalated, IncidentStatusCancelled:
		return !from.IsTerminal()
	case IncidentStatusClosed:
		return from == IncidentStatusResolved
	}
	return false
}

// Incident represents a reported utility fault.
//
// AssignedTeamID is owned by the dispatch gateway: the planner only ever
// proposes assignments and never writes this field itself. HoldPrevStatus
// remembers the status an on-hold incident resumes to.
type Incident struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Severity       Severity        `json:"severity"`
	Status         IncidentStatus  `json:"status"`
	AssetType      string          `json:"asset_type,omitempty"`
	ReportedAt     time.Time       `json:"reported_at"`
	ReportedBy     string          `json:"reported_by,omitempty"`
	AssignedTeamID *string         `json:"assigned_team_id,omitempty"`
	HoldPrevStatus *IncidentStatus `json:"hold_prev_status,omitempty"`
	Latitude       *float64        `json:"latitude,omitempty"`
	Longitude      *float64        `json:"longitude,omitempty"`
	ResolvedAt     *time.Time      `json:"resolved_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
