package repository

import (
	"context"
	"time"

	"broadcast-srv/internal/model"
	"broadcast-srv/pkg/paginator"
)

// Repository persists emergency broadcasts. Every call carries the audit
// scope of the acting user.
type Repository interface {
	Create(ctx context.Context, sc model.Scope, opts CreateOptions) (model.EmergencyBroadcast, error)
	Detail(ctx context.Context, sc model.Scope, id string) (model.EmergencyBroadcast, error)
	Get(ctx context.Context, sc model.Scope, opts GetOptions) ([]model.EmergencyBroadcast, paginator.Paginator, error)
	Update(ctx context.Context, sc model.Scope, opts UpdateOptions) (model.EmergencyBroadcast, error)
	UpdateStatus(ctx context.Context, sc model.Scope, opts UpdateStatusOptions) error
	IncrementAcknowledged(ctx context.Context, sc model.Scope, id string) error
	ListStale(ctx context.Context, status model.BroadcastStatus, olderThan time.Time, limit int) ([]model.EmergencyBroadcast, error)
}
