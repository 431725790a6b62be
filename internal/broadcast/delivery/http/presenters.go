package http

import (
	"time"

	"broadcast-srv/internal/broadcast"
	"broadcast-srv/internal/model"
	"broadcast-srv/pkg/paginator"
	"broadcast-srv/pkg/response"
)

// --- Request DTOs ---

type createReq struct {
	Type                   string     `json:"type" binding:"required"`
	Priority               *string    `json:"priority"`
	Title                  string     `json:"title" binding:"required"`
	Message                string     `json:"message" binding:"required"`
	Audience               []string   `json:"audience" binding:"required"`
	SchoolID               *string    `json:"school_id"`
	GradeLevel             *int       `json:"grade_level"`
	ClassID                *string    `json:"class_id"`
	GroupIDs               []string   `json:"group_ids"`
	Channels               []string   `json:"channels"`
	RequiresAcknowledgment bool       `json:"requires_acknowledgment"`
	ExpiresAt              *time.Time `json:"expires_at"`
}

func (r createReq) toInput(sc model.Scope) broadcast.CreateInput {
	input := broadcast.CreateInput{
		Type:                   model.EmergencyType(r.Type),
		Title:                  r.Title,
		Message:                r.Message,
		Audience:               toAudience(r.Audience),
		SchoolID:               r.SchoolID,
		GradeLevel:             r.GradeLevel,
		ClassID:                r.ClassID,
		GroupIDs:               r.GroupIDs,
		Channels:               toChannels(r.Channels),
		RequiresAcknowledgment: r.RequiresAcknowledgment,
		ExpiresAt:              r.ExpiresAt,
		SentBy:                 sc.ActorID,
	}
	if r.Priority != nil {
		p := model.Priority(*r.Priority)
		input.Priority = &p
	}
	return input
}

type updateReq struct {
	Title     *string    `json:"title"`
	Message   *string    `json:"message"`
	Channels  []string   `json:"channels"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (r updateReq) toInput() broadcast.UpdateInput {
	return broadcast.UpdateInput{
		Title:     r.Title,
		Message:   r.Message,
		Channels:  toChannels(r.Channels),
		ExpiresAt: r.ExpiresAt,
	}
}

type cancelReq struct {
	Reason string `json:"reason" binding:"required"`
}

type acknowledgeReq struct {
	RecipientID string     `json:"recipient_id" binding:"required"`
	At          *time.Time `json:"at"`
}

type listReq struct {
	Statuses []string `form:"status"`
	Types    []string `form:"type"`
	SchoolID string   `form:"school_id"`

	paginator.PaginateQuery
}

func (r listReq) toInput() broadcast.ListInput {
	statuses := make([]model.BroadcastStatus, 0, len(r.Statuses))
	for _, s := range r.Statuses {
		statuses = append(statuses, model.BroadcastStatus(s))
	}
	types := make([]model.EmergencyType, 0, len(r.Types))
	for _, t := range r.Types {
		types = append(types, model.EmergencyType(t))
	}
	return broadcast.ListInput{
		Filter: broadcast.Filter{
			Statuses: statuses,
			Types:    types,
			SchoolID: r.SchoolID,
		},
		PaginateQuery: r.PaginateQuery,
	}
}

func toAudience(values []string) []model.Audience {
	out := make([]model.Audience, 0, len(values))
	for _, v := range values {
		out = append(out, model.Audience(v))
	}
	return out
}

func toChannels(values []string) []model.Channel {
	out := make([]model.Channel, 0, len(values))
	for _, v := range values {
		out = append(out, model.Channel(v))
	}
	return out
}

// --- Response DTOs ---

type broadcastItem struct {
	ID                     string             `json:"id"`
	Type                   string             `json:"type"`
	Priority               string             `json:"priority"`
	Title                  string             `json:"title"`
	Message                string             `json:"message"`
	Audience               []string           `json:"audience"`
	SchoolID               *string            `json:"school_id,omitempty"`
	GradeLevel             *int               `json:"grade_level,omitempty"`
	ClassID                *string            `json:"class_id,omitempty"`
	GroupIDs               []string           `json:"group_ids,omitempty"`
	Channels               []string           `json:"channels"`
	RequiresAcknowledgment bool               `json:"requires_acknowledgment"`
	ExpiresAt              response.DateTime  `json:"expires_at"`
	SentBy                 string             `json:"sent_by"`
	Status                 string             `json:"status"`
	TotalRecipients        int                `json:"total_recipients"`
	DeliveredCount         int                `json:"delivered_count"`
	FailedCount            int                `json:"failed_count"`
	AcknowledgedCount      int                `json:"acknowledged_count"`
	CancelReason           *string            `json:"cancel_reason,omitempty"`
	SentAt                 *response.DateTime `json:"sent_at,omitempty"`
	CreatedAt              response.DateTime  `json:"created_at"`
	UpdatedAt              response.DateTime  `json:"updated_at"`
}

func newBroadcastItem(b model.EmergencyBroadcast) broadcastItem {
	item := broadcastItem{
		ID:                     b.ID,
		Type:                   string(b.Type),
		Priority:               string(b.Priority),
		Title:                  b.Title,
		Message:                b.Message,
		Audience:               audienceToStrings(b.Audience),
		SchoolID:               b.SchoolID,
		GradeLevel:             b.GradeLevel,
		ClassID:                b.ClassID,
		GroupIDs:               b.GroupIDs,
		Channels:               channelsToStrings(b.Channels),
		RequiresAcknowledgment: b.RequiresAcknowledgment,
		ExpiresAt:              response.DateTime(b.ExpiresAt),
		SentBy:                 b.SentBy,
		Status:                 string(b.Status),
		TotalRecipients:        b.TotalRecipients,
		DeliveredCount:         b.DeliveredCount,
		FailedCount:            b.FailedCount,
		AcknowledgedCount:      b.AcknowledgedCount,
		CancelReason:           b.CancelReason,
		CreatedAt:              response.DateTime(b.CreatedAt),
		UpdatedAt:              response.DateTime(b.UpdatedAt),
	}
	if b.SentAt != nil {
		sentAt := response.DateTime(*b.SentAt)
		item.SentAt = &sentAt
	}
	return item
}

func audienceToStrings(values []model.Audience) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

func channelsToStrings(values []model.Channel) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

type listResp struct {
	Items     []broadcastItem     `json:"items"`
	Paginator paginator.Paginator `json:"paginator"`
}

func newListResp(output broadcast.ListOutput) listResp {
	items := make([]broadcastItem, 0, len(output.Broadcasts))
	for _, b := range output.Broadcasts {
		items = append(items, newBroadcastItem(b))
	}
	return listResp{
		Items:     items,
		Paginator: output.Paginator,
	}
}

type statusResp struct {
	Broadcast        broadcastItem           `json:"broadcast"`
	Stats            model.DeliveryStats     `json:"stats"`
	RecentDeliveries []model.DeliveryOutcome `json:"recent_deliveries"`
}

func newStatusResp(output broadcast.StatusOutput) statusResp {
	return statusResp{
		Broadcast:        newBroadcastItem(output.Broadcast),
		Stats:            output.Stats,
		RecentDeliveries: output.RecentDeliveries,
	}
}

type enqueuedResp struct {
	BroadcastID string `json:"broadcast_id"`
	Queued      bool   `json:"queued"`
}
