package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/gridops/faultdispatch/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestWorkerRunsPeriodically(t *testing.T) {
	snapshots := &mockSnapshotSource{incidents: []domain.Incident{
		openIncident("inc-1", domain.SeverityCritical, "", time.Hour),
	}}
	directory := &mockTeamDirectory{teams: []domain.Team{
		{ID: "team-a", Capacity: 1},
	}}
	applier := &mockApplier{result: domain.BulkResult{Succeeded: 1}}

	svc := newTestService(snapshots, directory, applier)
	worker := NewWorker(WorkerConfig{Interval: 10 * time.Millisecond}, svc)

	worker.Start(context.Background())

	assert.Eventually(t, func() bool {
		return applier.calls() >= 2
	}, time.Second, 5*time.Millisecond)

	worker.Stop()
}

func TestWorkerStopIsIdempotent(t *testing.T) {
	svc := newTestService(&mockSnapshotSource{}, &mockTeamDirectory{}, &mockApplier{})
	worker := NewWorker(WorkerConfig{Interval: time.Hour}, svc)

	worker.Start(context.Background())
	worker.Stop()
	worker.Stop()
}

func TestWorkerDefaultsInterval(t *testing.T) {
	svc := newTestService(&mockSnapshotSource{}, &mockTeamDirectory{}, &mockApplier{})
	worker := NewWorker(WorkerConfig{}, svc)

	assert.Equal(t, DefaultWorkerConfig().Interval, worker.config.Interval)
}
