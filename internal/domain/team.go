package domain

import "time"

// Team represents a field response team.
//
// Capacity is the number of concurrent assignments the team accepts. It is
// authoritative state owned by the roster; planning passes clone it into
// scratch state and never write it back.
type Team struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Slug       string     `json:"slug"`
	SkillTags  []string   `json:"skill_tags"`
	Capacity   int        `json:"capacity"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
}

// HasSkill checks if the team carries the given capability tag.
func (t Team) HasSkill(tag string) bool {
	for _, s := range t.SkillTags {
		if s == tag {
			return true
		}
	}
	return false
}
