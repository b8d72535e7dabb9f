package domain

import "fmt"

// SLATarget defines the service-level target for one severity tier.
type SLATarget struct {
	// TargetMinutes is the resolution target counted from reported_at.
	TargetMinutes int `json:"target_minutes" koanf:"target_minutes"`
	// AtRiskFraction is the share of the target after which an incident
	// counts as at risk. Must lie strictly between 0 and 1.
	AtRiskFraction float64 `json:"at_risk_fraction" koanf:"at_risk_fraction"`
}

// SLAPolicy maps severity tiers to their service-level targets.
type SLAPolicy map[Severity]SLATarget

// DefaultSLAPolicy returns the built-in service-level policy.
func DefaultSLAPolicy() SLAPolicy {
	return SLAPolicy{
		SeverityCritical: {TargetMinutes: 60, AtRiskFraction: 0.75},
		SeverityMajor:    {TargetMinutes: 240, AtRiskFraction: 0.75},
		SeverityModerate: {TargetMinutes: 480, AtRiskFraction: 0.8},
		SeverityMinor:    {TargetMinutes: 1440, AtRiskFraction: 0.8},
	}
}

// TargetFor returns the target for a severity. Unknown severities fall
// back to the minor tier.
func (p SLAPolicy) TargetFor(severity Severity) SLATarget {
	if t, ok := p[severity]; ok {
		return t
	}
	return p[SeverityMinor]
}

// Validate checks policy invariants: every severity tier present, positive
// targets and at-risk fractions strictly inside (0, 1).
func (p SLAPolicy) Validate() error {
	for _, severity := range []Severity{SeverityCritical, SeverityMajor, SeverityModerate, SeverityMinor} {
		t, ok := p[severity]
		if !ok {
			return fmt.Errorf("sla policy: missing tier %s", severity)
		}
		if t.TargetMinutes <= 0 {
			return fmt.Errorf("sla policy: tier %s: target_minutes must be positive", severity)
		}
		if t.AtRiskFraction <= 0 || t.AtRiskFraction >= 1 {
			return fmt.Errorf("sla policy: tier %s: at_risk_fraction must be in (0, 1)", severity)
		}
	}
	return nil
}
