package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"broadcast-srv/internal/model"
	"broadcast-srv/internal/queue"
)

type fakeEnqueuer struct {
	mu       sync.Mutex
	payloads []queue.SendBroadcastPayload
	err      error
}

func (f *fakeEnqueuer) EnqueueSendBroadcast(p queue.SendBroadcastPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, p)
	return nil
}

func TestReaperReenqueuesStaleSending(t *testing.T) {
	stuck := draftBroadcast("b1")
	stuck.Status = model.BroadcastSending
	healthy := draftBroadcast("b2") // still DRAFT, must not be touched
	repo := newMockRepo(stuck, healthy)
	enq := &fakeEnqueuer{}

	r := NewReaper(testLogger(), repo, enq, ReaperConfig{})
	r.clock = func() time.Time { return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC) }
	r.sweep(context.Background())

	if len(enq.payloads) != 1 {
		t.Fatalf("enqueued %d tasks, want 1", len(enq.payloads))
	}
	p := enq.payloads[0]
	if p.BroadcastID != "b1" {
		t.Errorf("re-enqueued %q, want the stuck SENDING broadcast", p.BroadcastID)
	}
	if p.ActorRole != model.RoleSystem {
		t.Errorf("actor role = %q, want SYSTEM", p.ActorRole)
	}
}

func TestReaperEnqueueFailureDoesNotPanic(t *testing.T) {
	stuck := draftBroadcast("b1")
	stuck.Status = model.BroadcastSending
	enq := &fakeEnqueuer{err: errors.New("queue down")}

	r := NewReaper(testLogger(), newMockRepo(stuck), enq, ReaperConfig{})
	r.sweep(context.Background())

	if len(enq.payloads) != 0 {
		t.Errorf("enqueued %d tasks despite failing enqueuer", len(enq.payloads))
	}
}

func TestReaperConfigDefaults(t *testing.T) {
	r := NewReaper(testLogger(), newMockRepo(), &fakeEnqueuer{}, ReaperConfig{})
	if r.cfg.Interval != time.Minute {
		t.Errorf("interval = %v, want 1m default", r.cfg.Interval)
	}
	if r.cfg.StaleThreshold != 20*time.Minute {
		t.Errorf("staleThreshold = %v, want 20m default", r.cfg.StaleThreshold)
	}
	if r.cfg.BatchSize != 50 {
		t.Errorf("batchSize = %d, want 50 default", r.cfg.BatchSize)
	}
}
