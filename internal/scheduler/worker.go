package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// WorkerConfig contains auto-assign worker configuration.
type WorkerConfig struct {
	Interval time.Duration
}

// DefaultWorkerConfig returns default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{Interval: 30 * time.Second}
}

// Worker periodically runs the plan-then-apply cycle. Every tick plans
// from a fresh snapshot, so incidents whose mutations failed in an
// earlier run are picked up again without any dedicated retry state.
type Worker struct {
	config  WorkerConfig
	service *Service

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewWorker creates an auto-assign worker.
func NewWorker(config WorkerConfig, service *Service) *Worker {
	if config.Interval <= 0 {
		config.Interval = DefaultWorkerConfig().Interval
	}
	return &Worker{
		config:  config,
		service: service,
		stopCh:  make(chan struct{}),
	}
}

// Start launches the worker goroutine.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("starting auto-assign worker", "interval", w.config.Interval)

	w.wg.Add(1)
	go w.run(ctx)
}

// Stop gracefully stops the worker. A pass already in flight runs to
// completion.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
	slog.Info("auto-assign worker stopped")
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	result, err := w.service.Apply(ctx)
	if err != nil {
		slog.Error("auto-assign pass failed", "error", err)
		recordAutoAssignRun("error")
		return
	}

	recordAutoAssignRun("ok")

	if len(result.Plan.Entries) == 0 && len(result.Plan.Unplannable) == 0 {
		return
	}

	slog.Info("auto-assign pass completed",
		"planned", len(result.Plan.Entries),
		"unplannable", len(result.Plan.Unplannable),
		"applied", result.Apply.Succeeded,
		"failed", len(result.Apply.Failed),
	)
}
