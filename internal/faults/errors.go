package faults

import "errors"

// Reporting errors.
var (
	ErrIncidentNotFound     = errors.New("incident not found")
	ErrInvalidSeverity      = errors.New("invalid severity")
	ErrInvalidInitialStatus = errors.New("initial status must be pending or active")
)

var errInvalidPagination = errors.New("limit and offset must be non-negative integers")
