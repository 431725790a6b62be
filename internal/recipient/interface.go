package recipient

import (
	"context"

	"broadcast-srv/internal/model"
)

// Resolver flattens a broadcast's audience targeting into addressable
// recipients. Directory failures are returned, never swallowed: a resolver
// error must abort the send instead of silently broadcasting to nobody.
type Resolver interface {
	Resolve(ctx context.Context, sc model.Scope, b model.EmergencyBroadcast) ([]model.Recipient, error)
}
