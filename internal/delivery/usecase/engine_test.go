package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"broadcast-srv/internal/delivery"
	"broadcast-srv/internal/model"
	pkgLog "broadcast-srv/pkg/log"
)

func testLogger() pkgLog.Logger {
	return pkgLog.Init(pkgLog.ZapConfig{Level: "fatal"})
}

// fakeSender fails the first failures calls, then succeeds.
type fakeSender struct {
	mu       sync.Mutex
	channel  model.Channel
	failures int
	calls    int
}

func (s *fakeSender) Channel() model.Channel { return s.channel }

func (s *fakeSender) Send(ctx context.Context, req delivery.SendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= s.failures {
		return errors.New("provider unavailable")
	}
	return nil
}

type staticCancel struct{ cancelled bool }

func (c staticCancel) Cancelled(ctx context.Context, broadcastID string) bool { return c.cancelled }

// newTestEngine builds an engine with a recording sleep so backoff is
// asserted, not waited for.
func newTestEngine(t *testing.T, cfg Config, cancel delivery.CancelChecker, senders ...delivery.Sender) (*implEngine, *[]time.Duration) {
	t.Helper()
	e := New(testLogger(), cfg, cancel, senders...)

	var mu sync.Mutex
	sleeps := &[]time.Duration{}
	e.sleep = func(ctx context.Context, d time.Duration) error {
		mu.Lock()
		defer mu.Unlock()
		*sleeps = append(*sleeps, d)
		return nil
	}
	return e, sleeps
}

func recipientWithPhone(id string) model.Recipient {
	return model.Recipient{ID: id, Type: model.RecipientParent, Name: "P", Phone: "+15550100", Email: "p@example.com"}
}

func TestDeliverFirstAttemptSuccess(t *testing.T) {
	sender := &fakeSender{channel: model.ChannelSMS}
	e, sleeps := newTestEngine(t, Config{Workers: 2}, nil, sender)

	outcomes := e.DeliverToRecipients(context.Background(), delivery.DeliverInput{
		BroadcastID: "b1",
		Recipients:  []model.Recipient{recipientWithPhone("r1")},
		Channels:    []model.Channel{model.ChannelSMS},
		Title:       "Fire",
		Content:     "Evacuate",
	})

	if len(outcomes) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(outcomes))
	}
	o := outcomes[0]
	if o.Status != model.DeliveryDelivered {
		t.Errorf("status = %q, want DELIVERED (err: %s)", o.Status, o.Error)
	}
	if o.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", o.Attempts)
	}
	if len(*sleeps) != 0 {
		t.Errorf("no backoff expected on first-attempt success, got %v", *sleeps)
	}
}

func TestDeliverRetriesWithBackoff(t *testing.T) {
	tests := []struct {
		name         string
		failures     int
		wantStatus   model.DeliveryStatus
		wantAttempts int
		wantSleeps   []time.Duration
	}{
		{"succeeds on second attempt", 1, model.DeliveryDelivered, 2, []time.Duration{time.Second}},
		{"succeeds on third attempt", 2, model.DeliveryDelivered, 3, []time.Duration{time.Second, 2 * time.Second}},
		{"exhausts the budget", 3, model.DeliveryFailed, 3, []time.Duration{time.Second, 2 * time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{channel: model.ChannelSMS, failures: tt.failures}
			e, sleeps := newTestEngine(t, Config{Workers: 1, MaxAttempts: 3, BaseBackoff: time.Second}, nil, sender)

			outcomes := e.DeliverToRecipients(context.Background(), delivery.DeliverInput{
				BroadcastID: "b1",
				Recipients:  []model.Recipient{recipientWithPhone("r1")},
				Channels:    []model.Channel{model.ChannelSMS},
				Title:       "T",
				Content:     "C",
			})

			o := outcomes[0]
			if o.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", o.Status, tt.wantStatus)
			}
			if o.Attempts != tt.wantAttempts {
				t.Errorf("attempts = %d, want %d", o.Attempts, tt.wantAttempts)
			}
			if o.Status == model.DeliveryFailed && o.Error == "" {
				t.Error("failed outcome must carry the last error")
			}
			if len(*sleeps) != len(tt.wantSleeps) {
				t.Fatalf("sleeps = %v, want %v", *sleeps, tt.wantSleeps)
			}
			for i, d := range tt.wantSleeps {
				if (*sleeps)[i] != d {
					t.Errorf("sleep[%d] = %v, want %v", i, (*sleeps)[i], d)
				}
			}
		})
	}
}

func TestDeliverMissingContactFailsWithoutRetry(t *testing.T) {
	tests := []struct {
		name      string
		channel   model.Channel
		recipient model.Recipient
		wantErr   string
	}{
		{"sms without phone", model.ChannelSMS,
			model.Recipient{ID: "r1", Email: "a@b.c"}, "Missing phone number"},
		{"voice without phone", model.ChannelVoice,
			model.Recipient{ID: "r1", Email: "a@b.c"}, "Missing phone number"},
		{"email without address", model.ChannelEmail,
			model.Recipient{ID: "r1", Phone: "+15550100"}, "Missing email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{channel: tt.channel}
			e, sleeps := newTestEngine(t, Config{Workers: 1}, nil, sender)

			outcomes := e.DeliverToRecipients(context.Background(), delivery.DeliverInput{
				BroadcastID: "b1",
				Recipients:  []model.Recipient{tt.recipient},
				Channels:    []model.Channel{tt.channel},
				Title:       "T",
				Content:     "C",
			})

			o := outcomes[0]
			if o.Status != model.DeliveryFailed {
				t.Errorf("status = %q, want FAILED", o.Status)
			}
			if o.Attempts != 0 {
				t.Errorf("attempts = %d, want 0 (no provider call for missing contact)", o.Attempts)
			}
			if o.Error != tt.wantErr {
				t.Errorf("error = %q, want %q", o.Error, tt.wantErr)
			}
			if sender.calls != 0 {
				t.Errorf("provider called %d times, want 0", sender.calls)
			}
			if len(*sleeps) != 0 {
				t.Errorf("no backoff expected, got %v", *sleeps)
			}
		})
	}
}

func TestDeliverCrossProduct(t *testing.T) {
	sms := &fakeSender{channel: model.ChannelSMS}
	email := &fakeSender{channel: model.ChannelEmail}
	e, _ := newTestEngine(t, Config{Workers: 4}, nil, sms, email)

	recipients := []model.Recipient{
		recipientWithPhone("r1"), recipientWithPhone("r2"), recipientWithPhone("r3"),
	}
	outcomes := e.DeliverToRecipients(context.Background(), delivery.DeliverInput{
		BroadcastID: "b1",
		Recipients:  recipients,
		Channels:    []model.Channel{model.ChannelSMS, model.ChannelEmail},
		Title:       "T",
		Content:     "C",
	})

	if len(outcomes) != 6 {
		t.Fatalf("got %d outcomes, want 6 (3 recipients x 2 channels)", len(outcomes))
	}
	for _, o := range outcomes {
		if o.Status != model.DeliveryDelivered {
			t.Errorf("outcome %s/%s = %q, want DELIVERED", o.RecipientID, o.Channel, o.Status)
		}
	}
}

func TestDeliverCancelledMarksRemainingQueued(t *testing.T) {
	sender := &fakeSender{channel: model.ChannelSMS}
	e, _ := newTestEngine(t, Config{Workers: 1}, staticCancel{cancelled: true}, sender)

	outcomes := e.DeliverToRecipients(context.Background(), delivery.DeliverInput{
		BroadcastID: "b1",
		Recipients:  []model.Recipient{recipientWithPhone("r1"), recipientWithPhone("r2")},
		Channels:    []model.Channel{model.ChannelSMS},
		Title:       "T",
		Content:     "C",
	})

	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(outcomes))
	}
	for _, o := range outcomes {
		if o.Status != model.DeliveryQueued {
			t.Errorf("outcome %s = %q, want QUEUED under cancellation", o.RecipientID, o.Status)
		}
	}
	if sender.calls != 0 {
		t.Errorf("provider called %d times after cancellation, want 0", sender.calls)
	}
}

func TestDeliverUnknownChannel(t *testing.T) {
	e, _ := newTestEngine(t, Config{Workers: 1}, nil) // no senders registered

	outcomes := e.DeliverToRecipients(context.Background(), delivery.DeliverInput{
		BroadcastID: "b1",
		Recipients:  []model.Recipient{recipientWithPhone("r1")},
		Channels:    []model.Channel{model.ChannelSMS},
		Title:       "T",
		Content:     "C",
	})

	if outcomes[0].Status != model.DeliveryFailed || outcomes[0].Attempts != 0 {
		t.Errorf("outcome without sender = %+v, want immediate FAILED", outcomes[0])
	}
}
