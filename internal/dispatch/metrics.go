package dispatch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "faultdispatch"

var (
	mutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "mutations_total",
			Help:      "Total gateway mutations by operation and outcome",
		},
		[]string{"op", "status"},
	)

	mutationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "mutation_duration_seconds",
			Help:      "Time to apply one gateway mutation",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"op"},
	)
)

// recordMutation records the outcome of one gateway mutation.
func recordMutation(op string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	mutationsTotal.WithLabelValues(op, status).Inc()
	mutationDuration.WithLabelValues(op).Observe(duration.Seconds())
}
