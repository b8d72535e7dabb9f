package dispatch

import "errors"

// Gateway errors.
var (
	ErrIncidentNotFound  = errors.New("incident not found")
	ErrTeamNotFound      = errors.New("team not found")
	ErrUnknownStatus     = errors.New("unknown incident status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrIncidentTerminal  = errors.New("incident is in a terminal status")
)
