package scheduler

import (
	"testing"
	"time"

	"github.com/gridops/faultdispatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestPlanner() *Planner {
	return NewPlanner(NewMatcher(nil), domain.DefaultSLAPolicy())
}

func openIncident(id string, severity domain.Severity, assetType string, age time.Duration) domain.Incident {
	return domain.Incident{
		ID:         id,
		Severity:   severity,
		Status:     domain.IncidentStatusPending,
		AssetType:  assetType,
		ReportedAt: testNow.Add(-age),
	}
}

func TestPlanMatchesRequiredSkill(t *testing.T) {
	p := newTestPlanner()

	incidents := []domain.Incident{
		openIncident("inc-1", domain.SeverityMajor, "transformer", time.Hour),
	}
	teams := []domain.Team{
		{ID: "team-lv", SkillTags: []string{"LV"}, Capacity: 5},
		{ID: "team-hv", SkillTags: []string{"HV"}, Capacity: 1},
	}

	result := p.Plan(incidents, teams, testNow)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "inc-1", result.Entries[0].IncidentID)
	assert.Equal(t, "team-hv", result.Entries[0].TeamID)
	assert.Empty(t, result.Unplannable)
	assert.Empty(t, result.Errors)
}

func TestPlanUnknownAssetTypeAcceptsAnyTeam(t *testing.T) {
	p := newTestPlanner()

	incidents := []domain.Incident{
		openIncident("inc-1", domain.SeverityMinor, "streetlight", time.Hour),
	}
	teams := []domain.Team{
		{ID: "team-hv", SkillTags: []string{"HV"}, Capacity: 1},
	}

	result := p.Plan(incidents, teams, testNow)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "team-hv", result.Entries[0].TeamID)
}

func TestPlanNoMatchingSkill(t *testing.T) {
	p := newTestPlanner()

	incidents := []domain.Incident{
		openIncident("inc-1", domain.SeverityCritical, "comms", time.Hour),
	}
	teams := []domain.Team{
		{ID: "team-hv", SkillTags: []string{"HV"}, Capacity: 5},
	}

	result := p.Plan(incidents, teams, testNow)

	assert.Empty(t, result.Entries)
	require.Len(t, result.Unplannable, 1)
	assert.Equal(t, "inc-1", result.Unplannable[0].IncidentID)
	assert.Equal(t, domain.ReasonNoMatchingSkill, result.Unplannable[0].Reason)
}

func TestPlanNoCapacity(t *testing.T) {
	p := newTestPlanner()

	// two HV incidents, one HV slot: the more urgent one wins
	incidents := []domain.Incident{
		openIncident("inc-minor", domain.SeverityMinor, "transformer", time.Hour),
		openIncident("inc-critical", domain.SeverityCritical, "transformer", time.Hour),
	}
	teams := []domain.Team{
		{ID: "team-hv", SkillTags: []string{"HV"}, Capacity: 1},
	}

	result := p.Plan(incidents, teams, testNow)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "inc-critical", result.Entries[0].IncidentID)

	require.Len(t, result.Unplannable, 1)
	assert.Equal(t, "inc-minor", result.Unplannable[0].IncidentID)
	assert.Equal(t, domain.ReasonNoCapacity, result.Unplannable[0].Reason)
}

func TestPlanOrdersBySeverityThenUrgency(t *testing.T) {
	p := newTestPlanner()

	// a deeply breached minor incident must still rank below a fresh
	// critical one, while within a tier less headroom ranks first
	incidents := []domain.Incident{
		openIncident("minor-breached", domain.SeverityMinor, "", 5000*time.Minute),
		openIncident("critical-fresh", domain.SeverityCritical, "", time.Minute),
		openIncident("major-older", domain.SeverityMajor, "", 3*time.Hour),
		openIncident("major-newer", domain.SeverityMajor, "", time.Hour),
	}
	teams := []domain.Team{
		{ID: "team-a", Capacity: 10},
	}

	result := p.Plan(incidents, teams, testNow)

	require.Len(t, result.Entries, 4)
	assert.Equal(t, "critical-fresh", result.Entries[0].IncidentID)
	assert.Equal(t, "major-older", result.Entries[1].IncidentID)
	assert.Equal(t, "major-newer", result.Entries[2].IncidentID)
	assert.Equal(t, "minor-breached", result.Entries[3].IncidentID)
}

func TestPlanTieBreaksByReportTimeThenID(t *testing.T) {
	p := newTestPlanner()

	sameAge := 30 * time.Minute
	incidents := []domain.Incident{
		openIncident("inc-b", domain.SeverityMajor, "", sameAge),
		openIncident("inc-a", domain.SeverityMajor, "", sameAge),
		openIncident("inc-older", domain.SeverityMajor, "", time.Hour),
	}
	teams := []domain.Team{
		{ID: "team-a", Capacity: 10},
	}

	result := p.Plan(incidents, teams, testNow)

	require.Len(t, result.Entries, 3)
	assert.Equal(t, "inc-older", result.Entries[0].IncidentID)
	assert.Equal(t, "inc-a", result.Entries[1].IncidentID)
	assert.Equal(t, "inc-b", result.Entries[2].IncidentID)
}

func TestPlanPrefersTeamWithMostCapacity(t *testing.T) {
	p := newTestPlanner()

	incidents := []domain.Incident{
		openIncident("inc-1", domain.SeverityMajor, "", time.Hour),
	}
	teams := []domain.Team{
		{ID: "team-small", Capacity: 1},
		{ID: "team-big", Capacity: 5},
	}

	result := p.Plan(incidents, teams, testNow)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "team-big", result.Entries[0].TeamID)
}

func TestPlanCapacityTieBreaksByID(t *testing.T) {
	p := newTestPlanner()

	incidents := []domain.Incident{
		openIncident("inc-1", domain.SeverityMajor, "", time.Hour),
	}
	teams := []domain.Team{
		{ID: "team-z", Capacity: 3},
		{ID: "team-a", Capacity: 3},
	}

	result := p.Plan(incidents, teams, testNow)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "team-a", result.Entries[0].TeamID)
}

func TestPlanSpreadsContendersAcrossSkilledTeams(t *testing.T) {
	p := newTestPlanner()

	// two equal critical HV incidents, two HV teams with one slot each:
	// both get placed, one per team
	sameAge := 10 * time.Minute
	incidents := []domain.Incident{
		openIncident("inc-1", domain.SeverityCritical, "transformer", sameAge),
		openIncident("inc-2", domain.SeverityCritical, "transformer", sameAge),
	}
	teams := []domain.Team{
		{ID: "team-x", SkillTags: []string{"HV"}, Capacity: 1},
		{ID: "team-y", SkillTags: []string{"HV", "LV"}, Capacity: 1},
	}

	result := p.Plan(incidents, teams, testNow)

	require.Len(t, result.Entries, 2)
	assert.Empty(t, result.Unplannable)

	assigned := map[string]string{}
	for _, e := range result.Entries {
		assigned[e.IncidentID] = e.TeamID
	}
	assert.NotEqual(t, assigned["inc-1"], assigned["inc-2"])
}

func TestPlanSkipsAssignedAndTerminal(t *testing.T) {
	p := newTestPlanner()

	team := "team-a"
	assigned := openIncident("inc-assigned", domain.SeverityCritical, "", time.Hour)
	assigned.AssignedTeamID = &team

	resolved := openIncident("inc-resolved", domain.SeverityCritical, "", time.Hour)
	resolved.Status = domain.IncidentStatusResolved

	incidents := []domain.Incident{
		assigned,
		resolved,
		openIncident("inc-open", domain.SeverityMinor, "", time.Hour),
	}
	teams := []domain.Team{
		{ID: "team-a", Capacity: 10},
	}

	result := p.Plan(incidents, teams, testNow)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "inc-open", result.Entries[0].IncidentID)
	assert.Empty(t, result.Unplannable)
}

func TestPlanExcludesMalformedRecords(t *testing.T) {
	p := newTestPlanner()

	incidents := []domain.Incident{
		openIncident("inc-bad", domain.Severity("urgent"), "", time.Hour),
		openIncident("inc-good", domain.SeverityMajor, "", time.Hour),
	}
	teams := []domain.Team{
		{ID: "team-bad", Capacity: -1},
		{ID: "team-good", Capacity: 2},
	}

	result := p.Plan(incidents, teams, testNow)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "inc-good", result.Entries[0].IncidentID)
	assert.Equal(t, "team-good", result.Entries[0].TeamID)

	require.Len(t, result.Errors, 2)
	reasons := map[string]string{}
	for _, e := range result.Errors {
		reasons[e.ID] = e.Reason
	}
	assert.Equal(t, "negative capacity", reasons["team-bad"])
	assert.Equal(t, "unknown severity", reasons["inc-bad"])
}

func TestPlanNeverExceedsCapacity(t *testing.T) {
	p := newTestPlanner()

	incidents := make([]domain.Incident, 0, 20)
	for i := 0; i < 20; i++ {
		incidents = append(incidents, openIncident(
			string(rune('a'+i))+"-inc", domain.SeverityMajor, "", time.Duration(i)*time.Minute))
	}
	teams := []domain.Team{
		{ID: "team-a", Capacity: 3},
		{ID: "team-b", Capacity: 4},
	}

	result := p.Plan(incidents, teams, testNow)

	perTeam := map[string]int{}
	for _, e := range result.Entries {
		perTeam[e.TeamID]++
	}
	assert.LessOrEqual(t, perTeam["team-a"], 3)
	assert.LessOrEqual(t, perTeam["team-b"], 4)
	assert.Len(t, result.Entries, 7)
	assert.Len(t, result.Unplannable, 13)
}

func TestPlanEmptySnapshot(t *testing.T) {
	p := newTestPlanner()

	result := p.Plan(nil, nil, testNow)

	assert.Empty(t, result.Entries)
	assert.Empty(t, result.Unplannable)
	assert.Equal(t, testNow, result.GeneratedAt)
}
