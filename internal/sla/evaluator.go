// Package sla derives the urgency state of an incident from the
// service-level policy of its severity tier.
package sla

import (
	"time"

	"github.com/gridops/faultdispatch/internal/domain"
)

// State represents the derived urgency of an open incident.
type State string

// Urgency states.
const (
	StateOK       State = "ok"
	StateAtRisk   State = "at_risk"
	StateBreached State = "breached"
)

// Evaluation is the derived urgency of one incident at one instant.
// MinutesLeft is negative once the target is breached.
type Evaluation struct {
	State       State `json:"state"`
	MinutesLeft int   `json:"minutes_left"`
}

// Evaluate derives the urgency state of an incident from its severity and
// report time. The function is pure: identical inputs always yield the
// identical evaluation.
//
// Elapsed time clamps at zero, so future-dated reports evaluate as fresh
// rather than producing negative elapsed minutes. Unknown severities use
// the minor tier of the policy.
func Evaluate(severity domain.Severity, reportedAt, now time.Time, policy domain.SLAPolicy) Evaluation {
	target := policy.TargetFor(severity)

	elapsed := int(now.Sub(reportedAt).Minutes())
	if elapsed < 0 {
		elapsed = 0
	}

	minutesLeft := target.TargetMinutes - elapsed

	var state State
	switch {
	case minutesLeft <= 0:
		state = StateBreached
	case float64(minutesLeft) <= float64(target.TargetMinutes)*(1-target.AtRiskFraction):
		state = StateAtRisk
	default:
		state = StateOK
	}

	return Evaluation{State: state, MinutesLeft: minutesLeft}
}
