// Package scheduler ranks open incidents by SLA urgency and greedily
// assigns them to response teams under skill and capacity constraints.
package scheduler

import (
	"sort"
	"time"

	"github.com/gridops/faultdispatch/internal/domain"
	"github.com/gridops/faultdispatch/internal/sla"
)

// Planner produces an assignment plan for one snapshot of incidents and
// teams. A pass is synchronous, performs no I/O, and mutates nothing but
// its own per-pass capacity scratch state.
type Planner struct {
	matcher *Matcher
	policy  domain.SLAPolicy
}

// NewPlanner creates a planner with the given matcher and SLA policy.
func NewPlanner(matcher *Matcher, policy domain.SLAPolicy) *Planner {
	return &Planner{matcher: matcher, policy: policy}
}

type candidate struct {
	incident domain.Incident
	score    int
}

// Plan ranks the unassigned non-terminal incidents of the snapshot and
// greedily claims team capacity in priority order.
//
// Malformed records (unknown severity, negative team capacity) are
// excluded and reported in Errors; the pass never aborts. Incidents with
// no eligible team are reported as unplannable with reason
// no_matching_skill when no team carries the required capability at all,
// and no_capacity when skilled teams exist but their slots are taken.
//
// The pass is a single greedy sweep: each decision is locally best and
// never revisited, so higher-ranked incidents always get first claim on
// scarce slots, at the cost of global optimality.
func (p *Planner) Plan(incidents []domain.Incident, teams []domain.Team, now time.Time) domain.PlanResult {
	start := time.Now()

	result := domain.PlanResult{
		Entries:     make([]domain.PlanEntry, 0),
		Unplannable: make([]domain.Unplannable, 0),
		GeneratedAt: now,
	}

	validTeams := make([]domain.Team, 0, len(teams))
	for _, t := range teams {
		if t.Capacity < 0 {
			result.Errors = append(result.Errors, domain.RecordError{ID: t.ID, Reason: "negative capacity"})
			continue
		}
		validTeams = append(validTeams, t)
	}

	candidates := make([]candidate, 0, len(incidents))
	for _, inc := range incidents {
		if inc.Status.IsTerminal() || inc.AssignedTeamID != nil {
			continue
		}
		if !inc.Severity.IsValid() {
			result.Errors = append(result.Errors, domain.RecordError{ID: inc.ID, Reason: "unknown severity"})
			continue
		}

		eval := sla.Evaluate(inc.Severity, inc.ReportedAt, now, p.policy)
		candidates = append(candidates, candidate{
			incident: inc,
			score:    Score(inc.Severity, eval.MinutesLeft),
		})
	}

	// Descending score; ties go to the older report, then the smaller id.
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if !a.incident.ReportedAt.Equal(b.incident.ReportedAt) {
			return a.incident.ReportedAt.Before(b.incident.ReportedAt)
		}
		return a.incident.ID < b.incident.ID
	})

	tracker := NewCapacityTracker(validTeams)

	for _, c := range candidates {
		required, skillRequired := p.matcher.RequiredSkill(c.incident.AssetType)

		skilled := make([]domain.Team, 0, len(validTeams))
		for _, t := range validTeams {
			if !skillRequired || t.HasSkill(required) {
				skilled = append(skilled, t)
			}
		}

		if len(skilled) == 0 {
			result.Unplannable = append(result.Unplannable, domain.Unplannable{
				IncidentID: c.incident.ID,
				Reason:     domain.ReasonNoMatchingSkill,
			})
			continue
		}

		best, ok := pickTeam(skilled, tracker)
		if !ok {
			result.Unplannable = append(result.Unplannable, domain.Unplannable{
				IncidentID: c.incident.ID,
				Reason:     domain.ReasonNoCapacity,
			})
			continue
		}

		tracker.Decrement(best.ID)
		result.Entries = append(result.Entries, domain.PlanEntry{
			IncidentID: c.incident.ID,
			TeamID:     best.ID,
			Score:      c.score,
		})
	}

	recordPlanResult(result, time.Since(start))

	return result
}

// pickTeam selects the eligible team with the most remaining capacity,
// tie-broken by the lexicographically smallest id.
func pickTeam(teams []domain.Team, tracker *CapacityTracker) (domain.Team, bool) {
	var best domain.Team
	bestRemaining := 0

	for _, t := range teams {
		rem := tracker.Remaining(t.ID)
		if rem <= 0 {
			continue
		}
		if rem > bestRemaining || (rem == bestRemaining && t.ID < best.ID) {
			best = t
			bestRemaining = rem
		}
	}

	return best, bestRemaining > 0
}
