package usecase

import (
	"context"
	"encoding/json"

	"broadcast-srv/internal/broadcast"
	"broadcast-srv/internal/broadcast/repository"
	"broadcast-srv/internal/delivery"
	"broadcast-srv/internal/model"

	"github.com/friendsofgo/errors"
)

// progressEvent is published on the broadcast's progress channel when a
// fan-out phase begins or ends.
type progressEvent struct {
	BroadcastID string `json:"broadcast_id"`
	Phase       string `json:"phase"`
	Total       int    `json:"total"`
	Delivered   int    `json:"delivered"`
	Failed      int    `json:"failed"`
}

func (uc *implUseCase) publishProgress(ctx context.Context, ev progressEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := uc.redis.Publish(ctx, progressChannel(ev.BroadcastID), payload); err != nil {
		uc.l.Warnf(ctx, "internal.broadcast.usecase.publishProgress: %v", err)
	}
}

// Send resolves the audience and fans the broadcast out across its channels.
// It is callable for DRAFT broadcasts and for stale SENDING broadcasts being
// resumed after a worker crash; the Redis lock serializes concurrent sends.
func (uc *implUseCase) Send(ctx context.Context, sc model.Scope, id string) (broadcast.SendOutput, error) {
	locked, err := uc.redis.SetNX(ctx, sendLockKey(id), sc.ActorID, sendLockTTL)
	if err != nil {
		uc.l.Errorf(ctx, "internal.broadcast.usecase.Send.redis.SetNX: %v", err)
		return broadcast.SendOutput{}, err
	}
	if !locked {
		return broadcast.SendOutput{}, broadcast.ErrSendInProgress
	}
	defer func() {
		if err := uc.redis.Delete(context.WithoutCancel(ctx), sendLockKey(id)); err != nil {
			uc.l.Warnf(ctx, "internal.broadcast.usecase.Send.redis.Delete: %v", err)
		}
	}()

	b, err := uc.repo.Detail(ctx, sc, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return broadcast.SendOutput{}, broadcast.ErrBroadcastNotFound
		}
		uc.l.Errorf(ctx, "internal.broadcast.usecase.Send.repo.Detail: %v", err)
		return broadcast.SendOutput{}, err
	}

	switch b.Status {
	case model.BroadcastDraft, model.BroadcastSending:
	default:
		return broadcast.SendOutput{}, broadcast.ErrInvalidTransition
	}

	recipients, err := uc.resolver.Resolve(ctx, sc, b)
	if err != nil {
		uc.l.Errorf(ctx, "internal.broadcast.usecase.Send.resolver.Resolve: %v", err)
		uc.markFailed(ctx, sc, id)
		return broadcast.SendOutput{}, errors.Wrap(broadcast.ErrRecipientResolution, err.Error())
	}

	total := len(recipients)
	if err := uc.repo.UpdateStatus(ctx, sc, repository.UpdateStatusOptions{
		ID:              id,
		From:            []model.BroadcastStatus{model.BroadcastDraft, model.BroadcastSending},
		To:              model.BroadcastSending,
		TotalRecipients: &total,
	}); err != nil {
		if err == repository.ErrStatusConflict {
			return broadcast.SendOutput{}, broadcast.ErrInvalidTransition
		}
		uc.l.Errorf(ctx, "internal.broadcast.usecase.Send.repo.UpdateStatus: %v", err)
		return broadcast.SendOutput{}, err
	}

	uc.audit.Record(ctx, sc, "broadcast.send", id, "dispatch started")
	uc.publishProgress(ctx, progressEvent{BroadcastID: id, Phase: "started", Total: total})

	outcomes := uc.engine.DeliverToRecipients(ctx, delivery.DeliverInput{
		BroadcastID: id,
		Recipients:  recipients,
		Channels:    b.Channels,
		Title:       b.Title,
		Content:     b.Message,
	})

	uc.recent.Put(id, outcomes)
	stats := delivery.Stats(outcomes)

	cancelled, err := uc.redis.Exists(ctx, cancelFlagKey(id))
	if err != nil {
		uc.l.Warnf(ctx, "internal.broadcast.usecase.Send.redis.Exists: %v", err)
	}

	now := uc.clock()
	opts := repository.UpdateStatusOptions{
		ID:             id,
		DeliveredCount: &stats.Delivered,
		FailedCount:    &stats.Failed,
	}
	if cancelled {
		// Cancel already moved the row to CANCELLED; this write only lands
		// the counters for the portion that was dispatched before the flag
		// was observed.
		opts.From = []model.BroadcastStatus{model.BroadcastCancelled}
		opts.To = model.BroadcastCancelled
	} else {
		opts.From = []model.BroadcastStatus{model.BroadcastSending}
		opts.To = model.BroadcastSent
		opts.SentAt = &now
	}
	if err := uc.repo.UpdateStatus(ctx, sc, opts); err != nil {
		uc.l.Errorf(ctx, "internal.broadcast.usecase.Send.repo.UpdateStatus: %v", err)
		return broadcast.SendOutput{}, err
	}

	uc.publishProgress(ctx, progressEvent{
		BroadcastID: id,
		Phase:       "completed",
		Total:       stats.Total,
		Delivered:   stats.Delivered,
		Failed:      stats.Failed,
	})
	uc.audit.Record(ctx, sc, "broadcast.sent", id, "dispatch completed")

	return broadcast.SendOutput{
		Success:         !cancelled,
		TotalRecipients: total,
		Sent:            stats.Delivered,
		Failed:          stats.Failed,
	}, nil
}

// markFailed moves a broadcast to FAILED after an unrecoverable dispatch
// error. Best effort: the caller already has the primary error to report.
func (uc *implUseCase) markFailed(ctx context.Context, sc model.Scope, id string) {
	if err := uc.repo.UpdateStatus(ctx, sc, repository.UpdateStatusOptions{
		ID:   id,
		From: []model.BroadcastStatus{model.BroadcastDraft, model.BroadcastSending},
		To:   model.BroadcastFailed,
	}); err != nil {
		uc.l.Errorf(ctx, "internal.broadcast.usecase.markFailed: %v", err)
	}
}
