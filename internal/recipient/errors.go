package recipient

import "errors"

var (
	// ErrDirectoryUnavailable wraps directory query failures surfaced to the
	// orchestrator.
	ErrDirectoryUnavailable = errors.New("recipient directory unavailable")
)
