package usecase

import (
	"context"
	"time"

	"broadcast-srv/internal/broadcast"
	"broadcast-srv/internal/broadcast/repository"
	"broadcast-srv/internal/model"
)

// Acknowledge records that a recipient confirmed receipt. The counter is a
// raw increment: repeated acknowledgments from the same recipient each
// count, so the number reads as "acknowledgment events", not unique
// recipients.
func (uc *implUseCase) Acknowledge(ctx context.Context, sc model.Scope, id, recipientID string, at time.Time) error {
	b, err := uc.repo.Detail(ctx, sc, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return broadcast.ErrBroadcastNotFound
		}
		uc.l.Errorf(ctx, "internal.broadcast.usecase.Acknowledge.repo.Detail: %v", err)
		return err
	}

	if !b.RequiresAcknowledgment {
		return broadcast.ErrAckNotRequired
	}
	if b.Status != model.BroadcastSent && b.Status != model.BroadcastSending {
		return broadcast.ErrNotSent
	}

	if err := uc.repo.IncrementAcknowledged(ctx, sc, id); err != nil {
		if err == repository.ErrNotFound {
			return broadcast.ErrBroadcastNotFound
		}
		uc.l.Errorf(ctx, "internal.broadcast.usecase.Acknowledge.repo.IncrementAcknowledged: %v", err)
		return err
	}

	uc.l.Infof(ctx, "internal.broadcast.usecase.Acknowledge: broadcast=%s recipient=%s at=%s",
		id, recipientID, at.Format(time.RFC3339))

	return nil
}
