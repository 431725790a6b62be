package repository

import (
	"time"

	"broadcast-srv/internal/model"
	"broadcast-srv/pkg/paginator"
)

// CreateOptions contains options for creating a broadcast.
type CreateOptions struct {
	Broadcast model.EmergencyBroadcast
}

// UpdateOptions contains options for the pre-send broadcast patch.
// Nil fields are left unchanged.
type UpdateOptions struct {
	ID        string
	Title     *string
	Message   *string
	Channels  []model.Channel
	ExpiresAt *time.Time
}

// UpdateStatusOptions describes one atomic lifecycle transition. The update
// applies only while the current status is one of From; a single UPDATE
// carries the transition together with its counter writes so a phase change
// is never observed half-applied.
type UpdateStatusOptions struct {
	ID   string
	From []model.BroadcastStatus
	To   model.BroadcastStatus

	TotalRecipients *int
	DeliveredCount  *int
	FailedCount     *int
	CancelReason    *string
	SentAt          *time.Time
}

// Filter contains filtering options for broadcast queries.
type Filter struct {
	Statuses []model.BroadcastStatus
	Types    []model.EmergencyType
	SchoolID string
}

// GetOptions contains options for paginated broadcast listing.
type GetOptions struct {
	Filter        Filter
	PaginateQuery paginator.PaginateQuery
}
