package domain

import "time"

// PlanEntry proposes assigning one incident to one team.
type PlanEntry struct {
	IncidentID string `json:"incident_id"`
	TeamID     string `json:"team_id"`
	Score      int    `json:"score"`
}

// UnplannableReason explains why no team could be proposed for an incident.
type UnplannableReason string

// Unplannable reasons.
const (
	// ReasonNoMatchingSkill means no team in the snapshot carries the
	// capability the incident requires, regardless of capacity.
	ReasonNoMatchingSkill UnplannableReason = "no_matching_skill"
	// ReasonNoCapacity means skilled teams exist but all of their slots
	// were claimed by higher-priority incidents in this pass.
	ReasonNoCapacity UnplannableReason = "no_capacity"
)

// Unplannable records an incident that could not be placed in this pass.
type Unplannable struct {
	IncidentID string            `json:"incident_id"`
	Reason     UnplannableReason `json:"reason"`
}

// RecordError reports a malformed incident or team record that was
// excluded from a planning pass.
type RecordError struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// PlanResult is the outcome of one planning pass over a snapshot.
// Entries are ordered by descending priority: the order capacity was
// claimed in.
type PlanResult struct {
	Entries     []PlanEntry   `json:"entries"`
	Unplannable []Unplannable `json:"unplannable"`
	Errors      []RecordError `json:"errors,omitempty"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// ItemFailure reports one failed entry of a bulk mutation.
type ItemFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BulkResult summarizes a bulk mutation. Entries are applied
// independently: failures never roll back or block sibling entries.
type BulkResult struct {
	Succeeded int           `json:"succeeded"`
	Failed    []ItemFailure `json:"failed"`
}
