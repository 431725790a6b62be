package model

import "time"

// DeliveryStatus is the terminal result of one (recipient, channel) attempt.
type DeliveryStatus string

const (
	DeliveryDelivered DeliveryStatus = "DELIVERED"
	DeliveryFailed    DeliveryStatus = "FAILED"
	DeliveryQueued    DeliveryStatus = "QUEUED"
	DeliveryBounced   DeliveryStatus = "BOUNCED"
)

// DeliveryOutcome records the result of attempting to deliver one message to
// one recipient over one channel. Immutable after creation.
type DeliveryOutcome struct {
	RecipientID   string         `json:"recipient_id"`
	RecipientType RecipientType  `json:"recipient_type"`
	Channel       Channel        `json:"channel"`
	Status        DeliveryStatus `json:"status"`
	Attempts      int            `json:"attempts"`
	Error         string         `json:"error,omitempty"`
	At            time.Time      `json:"at"`
}

// ChannelStats is a per-channel delivered/failed breakdown.
type ChannelStats struct {
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}

// DeliveryStats is an aggregate view over a set of delivery outcomes.
// Derived, recomputed on demand, never independently mutated.
type DeliveryStats struct {
	Total     int                      `json:"total"`
	Delivered int                      `json:"delivered"`
	Failed    int                      `json:"failed"`
	Pending   int                      `json:"pending"`
	ByChannel map[Channel]ChannelStats `json:"by_channel"`
}
