package usecase

import (
	"context"

	"broadcast-srv/internal/broadcast"
	"broadcast-srv/internal/broadcast/repository"
	"broadcast-srv/internal/model"
)

// Cancel stops a broadcast. A DRAFT is simply retired; a SENDING broadcast
// additionally gets its cancel flag raised so in-flight fan-out stops
// dispatching work that has not started. Messages already handed to a
// provider are not recalled.
func (uc *implUseCase) Cancel(ctx context.Context, sc model.Scope, id, reason string) error {
	b, err := uc.repo.Detail(ctx, sc, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return broadcast.ErrBroadcastNotFound
		}
		uc.l.Errorf(ctx, "internal.broadcast.usecase.Cancel.repo.Detail: %v", err)
		return err
	}

	switch b.Status {
	case model.BroadcastDraft, model.BroadcastSending:
	default:
		return broadcast.ErrInvalidTransition
	}

	if b.Status == model.BroadcastSending {
		// Raise the flag before the status write so a racing fan-out cannot
		// miss both.
		if err := uc.redis.Set(ctx, cancelFlagKey(id), "1", cancelFlagTTL); err != nil {
			uc.l.Errorf(ctx, "internal.broadcast.usecase.Cancel.redis.Set: %v", err)
			return err
		}
	}

	if err := uc.repo.UpdateStatus(ctx, sc, repository.UpdateStatusOptions{
		ID:           id,
		From:         []model.BroadcastStatus{model.BroadcastDraft, model.BroadcastSending},
		To:           model.BroadcastCancelled,
		CancelReason: &reason,
	}); err != nil {
		if err == repository.ErrStatusConflict {
			return broadcast.ErrInvalidTransition
		}
		uc.l.Errorf(ctx, "internal.broadcast.usecase.Cancel.repo.UpdateStatus: %v", err)
		return err
	}

	uc.audit.Record(ctx, sc, "broadcast.cancel", id, "cancelled: "+reason)

	return nil
}
