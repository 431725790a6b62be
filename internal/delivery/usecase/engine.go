package usecase

import (
	"context"
	"sync"
	"time"

	"broadcast-srv/internal/delivery"
	"broadcast-srv/internal/model"
)

type task struct {
	recipient model.Recipient
	channel   model.Channel
}

// DeliverToRecipients fans the broadcast out to the full recipient x channel
// cross-product on a bounded worker pool. Outcomes carry no ordering
// guarantee. The call returns only after every task resolved or was skipped
// by cancellation.
func (e *implEngine) DeliverToRecipients(ctx context.Context, input delivery.DeliverInput) []model.DeliveryOutcome {
	tasks := make([]task, 0, len(input.Recipients)*len(input.Channels))
	for _, rec := range input.Recipients {
		for _, ch := range input.Channels {
			tasks = append(tasks, task{recipient: rec, channel: ch})
		}
	}
	if len(tasks) == 0 {
		return nil
	}

	taskCh := make(chan task)
	outcomeCh := make(chan model.DeliveryOutcome, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < e.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range taskCh {
				// Cooperative cancellation: tasks not yet started stay
				// QUEUED instead of being dispatched.
				if e.cancelled(ctx, input.BroadcastID) {
					outcomeCh <- model.DeliveryOutcome{
						RecipientID:   t.recipient.ID,
						RecipientType: t.recipient.Type,
						Channel:       t.channel,
						Status:        model.DeliveryQueued,
						Error:         "broadcast cancelled before dispatch",
						At:            time.Now(),
					}
					continue
				}
				outcomeCh <- e.deliverToChannel(ctx, input.BroadcastID, t.recipient, t.channel, input.Title, input.Content)
			}
		}()
	}

	for _, t := range tasks {
		taskCh <- t
	}
	close(taskCh)
	wg.Wait()
	close(outcomeCh)

	outcomes := make([]model.DeliveryOutcome, 0, len(tasks))
	for o := range outcomeCh {
		outcomes = append(outcomes, o)
	}

	e.l.Infof(ctx, "internal.delivery.usecase.DeliverToRecipients: broadcast=%s tasks=%d", input.BroadcastID, len(outcomes))
	return outcomes
}

// deliverToChannel attempts one (recipient, channel) delivery with bounded
// retries and exponential backoff. Precondition failures (missing contact
// info) fail immediately without consuming a retry. Transient failures are
// retried up to the attempt budget and resolve to a FAILED outcome carrying
// the last error; they are never raised to the caller.
func (e *implEngine) deliverToChannel(ctx context.Context, broadcastID string, rec model.Recipient, channel model.Channel, title, content string) model.DeliveryOutcome {
	outcome := model.DeliveryOutcome{
		RecipientID:   rec.ID,
		RecipientType: rec.Type,
		Channel:       channel,
	}

	fail := func(attempts int, msg string) model.DeliveryOutcome {
		outcome.Status = model.DeliveryFailed
		outcome.Attempts = attempts
		outcome.Error = msg
		outcome.At = time.Now()
		return outcome
	}

	sender, ok := e.senders[channel]
	if !ok {
		return fail(0, delivery.ErrUnsupportedChannel.Error())
	}

	if err := checkPrerequisites(rec, channel); err != nil {
		return fail(0, err.Error())
	}

	var lastErr error
	for attempt := 1; attempt <= e.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			backoff := e.cfg.BaseBackoff << (attempt - 2)
			if err := e.sleep(ctx, backoff); err != nil {
				return fail(attempt-1, "delivery aborted: "+err.Error())
			}
		}

		// Attempts are not idempotent-checked: each one re-formats and
		// re-sends, so a transient success after an ack loss can duplicate.
		payload, err := delivery.FormatForChannel(channel, title, content)
		if err != nil {
			return fail(attempt, err.Error())
		}

		if lim, ok := e.limiters[channel]; ok {
			if err := lim.Wait(ctx); err != nil {
				return fail(attempt-1, "delivery aborted: "+err.Error())
			}
		}

		err = sender.Send(ctx, delivery.SendRequest{
			BroadcastID: broadcastID,
			Channel:     channel,
			Recipient:   rec,
			Title:       title,
			Payload:     payload,
		})
		if err == nil {
			outcome.Status = model.DeliveryDelivered
			outcome.Attempts = attempt
			outcome.At = time.Now()
			return outcome
		}

		lastErr = err
		e.l.Warnf(ctx, "internal.delivery.usecase.deliverToChannel: broadcast=%s recipient=%s channel=%s attempt=%d err=%v",
			broadcastID, rec.ID, channel, attempt, err)
	}

	return fail(e.cfg.MaxAttempts, lastErr.Error())
}

func checkPrerequisites(rec model.Recipient, channel model.Channel) error {
	switch channel {
	case model.ChannelSMS, model.ChannelVoice:
		if !rec.HasPhone() {
			return delivery.ErrMissingPhone
		}
	case model.ChannelEmail:
		if !rec.HasEmail() {
			return delivery.ErrMissingEmail
		}
	}
	return nil
}

func (e *implEngine) cancelled(ctx context.Context, broadcastID string) bool {
	if ctx.Err() != nil {
		return true
	}
	return e.cancel != nil && e.cancel.Cancelled(ctx, broadcastID)
}
