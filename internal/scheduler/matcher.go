package scheduler

import "strings"

// Matcher maps an incident's asset type to the capability tag a team must
// carry to work on it. Asset types outside the table require no
// particular skill, so any team is eligible.
type Matcher struct {
	table map[string]string
}

// DefaultSkillTable returns the built-in asset-to-capability mapping.
func DefaultSkillTable() map[string]string {
	return map[string]string{
		"transformer": "HV",
		"substation":  "HV",
		"line":        "LV",
		"meter":       "LV",
		"comms":       "Comms",
	}
}

// NewMatcher creates a matcher from an asset-to-capability table.
// A nil or empty table falls back to the default mapping. Keys are
// matched case-insensitively.
func NewMatcher(table map[string]string) *Matcher {
	if len(table) == 0 {
		table = DefaultSkillTable()
	}

	normalized := make(map[string]string, len(table))
	for asset, skill := range table {
		normalized[strings.ToLower(strings.TrimSpace(asset))] = skill
	}

	return &Matcher{table: normalized}
}

// RequiredSkill returns the capability tag required for an asset type.
// The second return is false when no skill is required: the asset type is
// empty or not in the table.
func (m *Matcher) RequiredSkill(assetType string) (string, bool) {
	assetType = strings.ToLower(strings.TrimSpace(assetType))
	if assetType == "" {
		return "", false
	}

	skill, ok := m.table[assetType]
	return skill, ok
}
