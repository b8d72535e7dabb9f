package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityWeight(t *testing.T) {
	assert.Equal(t, 4, SeverityCritical.Weight())
	assert.Equal(t, 3, SeverityMajor.Weight())
	assert.Equal(t, 2, SeverityModerate.Weight())
	assert.Equal(t, 1, SeverityMinor.Weight())
	assert.Equal(t, 1, Severity("bogus").Weight())
}

func TestSeverityIsValid(t *testing.T) {
	for _, s := range []Severity{SeverityCritical, SeverityMajor, SeverityModerate, SeverityMinor} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, Severity("urgent").IsValid())
	assert.False(t, Severity("").IsValid())
}

func TestIncidentStatusIsTerminal(t *testing.T) {
	assert.True(t, IncidentStatusResolved.IsTerminal())
	assert.True(t, IncidentStatusClosed.IsTerminal())
	assert.True(t, IncidentStatusCancelled.IsTerminal())
	assert.False(t, IncidentStatusPending.IsTerminal())
	assert.False(t, IncidentStatusOnHold.IsTerminal())
	assert.False(t, IncidentStatusEscalated.IsTerminal())
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name     string
		from     IncidentStatus
		to       IncidentStatus
		holdPrev *IncidentStatus
		want     bool
	}{
		{name: "pending to in_progress", from: IncidentStatusPending, to: IncidentStatusInProgress, want: true},
		{name: "active to in_progress", from: IncidentStatusActive, to: IncidentStatusInProgress, want: true},
		{name: "in_progress to resolved", from: IncidentStatusInProgress, to: IncidentStatusResolved, want: true},
		{name: "resolved to closed", from: IncidentStatusResolved, to: IncidentStatusClosed, want: true},
		{name: "pending to resolved skips in_progress", from: IncidentStatusPending, to: IncidentStatusResolved, want: false},
		{name: "pending to closed", from: IncidentStatusPending, to: IncidentStatusClosed, want: false},
		{name: "closed to in_progress", from: IncidentStatusClosed, to: IncidentStatusInProgress, want: false},
		{name: "cancelled to escalated", from: IncidentStatusCancelled, to: IncidentStatusEscalated, want: false},
		{name: "same state rejected", from: IncidentStatusActive, to: IncidentStatusActive, want: false},
		{name: "any open to on_hold", from: IncidentStatusEscalated, to: IncidentStatusOnHold, want: true},
		{name: "any open to cancelled", from: IncidentStatusInProgress, to: IncidentStatusCancelled, want: true},
		{name: "any open to escalated", from: IncidentStatusPending, to: IncidentStatusEscalated, want: true},
		{name: "resolved to on_hold", from: IncidentStatusResolved, to: IncidentStatusOnHold, want: false},
		{name: "unknown from", from: IncidentStatus("limbo"), to: IncidentStatusActive, want: false},
		{name: "unknown to", from: IncidentStatusActive, to: IncidentStatus("limbo"), want: false},
		{
			name:     "on_hold resumes prior status",
			from:     IncidentStatusOnHold,
			to:       IncidentStatusInProgress,
			holdPrev: statusPtr(IncidentStatusInProgress),
			want:     true,
		},
		{
			name:     "on_hold cannot jump elsewhere",
			from:     IncidentStatusOnHold,
			to:       IncidentStatusResolved,
			holdPrev: statusPtr(IncidentStatusInProgress),
			want:     false,
		},
		{name: "on_hold without prior status", from: IncidentStatusOnHold, to: IncidentStatusInProgress, want: false},
		{name: "on_hold to escalated", from: IncidentStatusOnHold, to: IncidentStatusEscalated, want: true},
		{name: "on_hold to cancelled", from: IncidentStatusOnHold, to: IncidentStatusCancelled, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to, tt.holdPrev))
		})
	}
}

func statusPtr(s IncidentStatus) *IncidentStatus {
	return &s
}
