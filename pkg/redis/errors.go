package redis

import "errors"

var (
	ErrHostRequired = errors.New("redis: host is required")
	ErrInvalidPort  = errors.New("redis: invalid port")
	// ErrNotFound is returned by Get when the key does not exist.
	ErrNotFound = errors.New("redis: key not found")
)
