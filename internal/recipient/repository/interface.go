package repository

import (
	"context"

	"broadcast-srv/internal/model"
)

// Repository is the read-only school directory: students, their guardians,
// and staff, each with contact info.
type Repository interface {
	ListStudents(ctx context.Context, sc model.Scope, opts ListOptions) ([]model.Recipient, error)
	ListGuardians(ctx context.Context, sc model.Scope, opts ListOptions) ([]model.Recipient, error)
	ListStaff(ctx context.Context, sc model.Scope, opts ListOptions) ([]model.Recipient, error)
}

// ListOptions filters a directory query. Zero values mean "no filter".
// Limit/Offset page through large result sets.
type ListOptions struct {
	SchoolID   string
	GradeLevel *int
	ClassID    string
	GroupIDs   []string

	// EmergencyOnly restricts guardians to designated emergency contacts.
	EmergencyOnly bool

	Limit  int
	Offset int
}
