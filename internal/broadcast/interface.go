package broadcast

import (
	"context"
	"time"

	"broadcast-srv/internal/model"
)

// UseCase owns the broadcast lifecycle: create, send, track, cancel,
// acknowledge.
type UseCase interface {
	Create(ctx context.Context, sc model.Scope, input CreateInput) (model.EmergencyBroadcast, error)
	Update(ctx context.Context, sc model.Scope, id string, input UpdateInput) (model.EmergencyBroadcast, error)
	Send(ctx context.Context, sc model.Scope, id string) (SendOutput, error)
	Cancel(ctx context.Context, sc model.Scope, id, reason string) error
	Acknowledge(ctx context.Context, sc model.Scope, id, recipientID string, at time.Time) error
	Status(ctx context.Context, sc model.Scope, id string) (StatusOutput, error)
	List(ctx context.Context, sc model.Scope, input ListInput) (ListOutput, error)
}
