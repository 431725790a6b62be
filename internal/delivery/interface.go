package delivery

import (
	"context"

	"broadcast-srv/internal/model"
)

// Engine fans a broadcast out to every (recipient, channel) pair with
// bounded concurrency and per-pair retry. It never returns an error: every
// pair resolves to a terminal DeliveryOutcome and the caller inspects the
// aggregate stats.
type Engine interface {
	DeliverToRecipients(ctx context.Context, input DeliverInput) []model.DeliveryOutcome
}

// Sender performs the actual provider call for one channel. Implementations
// live in internal/gateway.
type Sender interface {
	// Send delivers a formatted payload to one recipient.
	Send(ctx context.Context, req SendRequest) error

	// Channel returns which delivery channel this sender handles.
	Channel() model.Channel
}

// CancelChecker reports whether a broadcast was cancelled mid-send, so the
// engine stops dispatching tasks that have not started yet.
type CancelChecker interface {
	Cancelled(ctx context.Context, broadcastID string) bool
}
