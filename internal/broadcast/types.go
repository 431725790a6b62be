package broadcast

import (
	"time"

	"broadcast-srv/internal/model"
	"broadcast-srv/pkg/paginator"
)

// CreateInput describes a new broadcast. Priority, Channels and ExpiresAt
// are optional: absent values resolve from the emergency type's defaults.
type CreateInput struct {
	Type     model.EmergencyType
	Priority *model.Priority
	Title    string
	Message  string

	Audience   []model.Audience
	SchoolID   *string
	GradeLevel *int
	ClassID    *string
	GroupIDs   []string

	Channels               []model.Channel
	RequiresAcknowledgment bool
	ExpiresAt              *time.Time

	SentBy string
}

// UpdateInput patches a broadcast before it is sent. Nil fields are left
// unchanged.
type UpdateInput struct {
	Title     *string
	Message   *string
	Channels  []model.Channel
	ExpiresAt *time.Time
}

// SendOutput summarizes a completed send.
type SendOutput struct {
	Success         bool `json:"success"`
	TotalRecipients int  `json:"total_recipients"`
	Sent            int  `json:"sent"`
	Failed          int  `json:"failed"`
}

// StatusOutput is the read-only tracking view of a broadcast.
type StatusOutput struct {
	Broadcast        model.EmergencyBroadcast
	Stats            model.DeliveryStats
	RecentDeliveries []model.DeliveryOutcome
}

// Filter contains filtering options for broadcast listing.
type Filter struct {
	Statuses []model.BroadcastStatus
	Types    []model.EmergencyType
	SchoolID string
}

// ListInput contains filter and pagination for broadcast listing.
type ListInput struct {
	Filter        Filter
	PaginateQuery paginator.PaginateQuery
}

// ListOutput contains a page of broadcasts.
type ListOutput struct {
	Broadcasts []model.EmergencyBroadcast
	Paginator  paginator.Paginator
}
