package scheduler

import (
	"time"

	"github.com/gridops/faultdispatch/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "faultdispatch"

var (
	planPassDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "plan_pass_duration_seconds",
			Help:      "Duration of one planning pass",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	incidentsPlanned = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "incidents_planned_total",
			Help:      "Total plan entries produced",
		},
	)

	incidentsUnplannable = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "incidents_unplannable_total",
			Help:      "Total incidents left without an eligible team",
		},
		[]string{"reason"},
	)

	recordsExcluded = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "records_excluded_total",
			Help:      "Total malformed records excluded from planning passes",
		},
	)

	autoAssignRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "auto_assign_runs_total",
			Help:      "Total auto-assign worker runs",
		},
		[]string{"status"},
	)
)

// recordPlanResult records the outcome metrics of one planning pass.
func recordPlanResult(result domain.PlanResult, duration time.Duration) {
	planPassDuration.Observe(duration.Seconds())
	incidentsPlanned.Add(float64(len(result.Entries)))
	for _, u := range result.Unplannable {
		incidentsUnplannable.WithLabelValues(string(u.Reason)).Inc()
	}
	recordsExcluded.Add(float64(len(result.Errors)))
}

// recordAutoAssignRun records one worker run.
func recordAutoAssignRun(status string) {
	autoAssignRuns.WithLabelValues(status).Inc()
}
