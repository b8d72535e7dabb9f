package scheduler

import "github.com/gridops/faultdispatch/internal/domain"

const (
	// urgencyCeiling caps the urgency contribution of remaining SLA
	// minutes. Incidents with more headroom than this score a flat zero
	// urgency.
	urgencyCeiling = 10_000

	// severityBand spaces severity tiers apart. It exceeds urgencyCeiling,
	// so urgency can reorder incidents within a tier but never lift a
	// lower tier above a higher one: a breached minor fault still ranks
	// below a fresh critical one.
	severityBand = 100_000
)

// Score folds severity and SLA urgency into a single sortable priority.
// Higher is more urgent. Severity dominates; fewer remaining minutes raise
// the score within a tier.
func Score(severity domain.Severity, minutesLeft int) int {
	if minutesLeft < 0 {
		minutesLeft = 0
	}

	urgency := urgencyCeiling - minutesLeft
	if urgency < 0 {
		urgency = 0
	}

	return severity.Weight()*severityBand + urgency
}
