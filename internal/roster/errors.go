package roster

import "errors"

// Roster errors.
var (
	ErrTeamNotFound = errors.New("team not found")
	ErrTeamExists   = errors.New("team with this slug already exists")
)
