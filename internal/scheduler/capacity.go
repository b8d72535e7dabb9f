package scheduler

import (
	"log/slog"

	"github.com/gridops/faultdispatch/internal/domain"
)

// CapacityTracker holds the remaining assignment slots of each team for
// one planning pass. It is scratch state seeded from a snapshot of the
// roster; the authoritative team records are never written.
type CapacityTracker struct {
	remaining map[string]int
}

// NewCapacityTracker seeds a tracker from a team snapshot.
func NewCapacityTracker(teams []domain.Team) *CapacityTracker {
	remaining := make(map[string]int, len(teams))
	for _, t := range teams {
		remaining[t.ID] = t.Capacity
	}
	return &CapacityTracker{remaining: remaining}
}

// Remaining returns the unclaimed slots of a team. Unknown teams have
// zero capacity.
func (c *CapacityTracker) Remaining(teamID string) int {
	return c.remaining[teamID]
}

// Decrement claims one slot of a team. A decrement that would go below
// zero signals an upstream data inconsistency: it is refused, logged and
// the value clamped to zero.
func (c *CapacityTracker) Decrement(teamID string) bool {
	rem, ok := c.remaining[teamID]
	if !ok || rem <= 0 {
		slog.Warn("capacity underflow refused", "team_id", teamID, "remaining", rem)
		c.remaining[teamID] = 0
		return false
	}

	c.remaining[teamID] = rem - 1
	return true
}
