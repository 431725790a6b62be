package delivery

import "errors"

// Precondition failures: recorded immediately as FAILED outcomes without
// consuming any retry.
var (
	ErrMissingPhone       = errors.New("Missing phone number")
	ErrMissingEmail       = errors.New("Missing email address")
	ErrUnsupportedChannel = errors.New("unsupported delivery channel")
)
