package postgres

import "errors"

var (
	// ErrInvalidUUID is returned when an identifier is not a valid UUID.
	ErrInvalidUUID = errors.New("invalid UUID format")
)
