package repository

import "errors"

var (
	// ErrNotFound is returned when the broadcast id does not exist.
	ErrNotFound = errors.New("broadcast not found")
	// ErrStatusConflict is returned when a guarded status transition finds
	// the broadcast in a state not covered by the guard.
	ErrStatusConflict = errors.New("broadcast status conflict")
)
