package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "North Crew", want: "north-crew"},
		{name: "diacritics stripped", in: "Équipe Réseau", want: "equipe-reseau"},
		{name: "punctuation collapsed", in: "HV / Substation -- Team #3", want: "hv-substation-team-3"},
		{name: "leading and trailing junk", in: "  --Line Crew--  ", want: "line-crew"},
		{name: "already a slug", in: "comms-crew", want: "comms-crew"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
