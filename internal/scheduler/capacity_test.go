package scheduler

import (
	"testing"

	"github.com/gridops/faultdispatch/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCapacityTracker(t *testing.T) {
	tracker := NewCapacityTracker([]domain.Team{
		{ID: "alpha", Capacity: 2},
		{ID: "bravo", Capacity: 0},
	})

	assert.Equal(t, 2, tracker.Remaining("alpha"))
	assert.True(t, tracker.Decrement("alpha"))
	assert.True(t, tracker.Decrement("alpha"))
	assert.Equal(t, 0, tracker.Remaining("alpha"))

	// further decrements are refused and clamp at zero
	assert.False(t, tracker.Decrement("alpha"))
	assert.Equal(t, 0, tracker.Remaining("alpha"))

	assert.False(t, tracker.Decrement("bravo"))
	assert.Equal(t, 0, tracker.Remaining("bravo"))
}

func TestCapacityTrackerUnknownTeam(t *testing.T) {
	tracker := NewCapacityTracker(nil)

	assert.Equal(t, 0, tracker.Remaining("ghost"))
	assert.False(t, tracker.Decrement("ghost"))
	assert.Equal(t, 0, tracker.Remaining("ghost"))
}
