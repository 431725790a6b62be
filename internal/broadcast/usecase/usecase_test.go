package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"broadcast-srv/internal/broadcast"
	"broadcast-srv/internal/broadcast/repository"
	"broadcast-srv/internal/delivery"
	"broadcast-srv/internal/model"
	"broadcast-srv/internal/recipient"
	pkgLog "broadcast-srv/pkg/log"
	"broadcast-srv/pkg/paginator"
	pkgRedis "broadcast-srv/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

func testLogger() pkgLog.Logger {
	return pkgLog.Init(pkgLog.ZapConfig{Level: "fatal"})
}

// --- fakes ---

type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string

	published []string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

var _ pkgRedis.IRedis = &fakeRedis{}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = "1"
	return nil
}

func (f *fakeRedis) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	f.data[key] = "1"
	return true, nil
}

func (f *fakeRedis) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return "", pkgRedis.ErrNotFound
	}
	return v, nil
}

func (f *fakeRedis) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeRedis) Exists(ctx context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok, nil
}

func (f *fakeRedis) Publish(ctx context.Context, channel string, payload interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, channel)
	return nil
}

func (f *fakeRedis) Close() error                   { return nil }
func (f *fakeRedis) Ping(ctx context.Context) error { return nil }
func (f *fakeRedis) GetClient() *goredis.Client     { return nil }

type mockRepo struct {
	mu         sync.Mutex
	broadcasts map[string]model.EmergencyBroadcast

	transitions []repository.UpdateStatusOptions
	acks        int
}

func newMockRepo(seed ...model.EmergencyBroadcast) *mockRepo {
	r := &mockRepo{broadcasts: make(map[string]model.EmergencyBroadcast)}
	for _, b := range seed {
		r.broadcasts[b.ID] = b
	}
	return r
}

var _ repository.Repository = &mockRepo{}

func (r *mockRepo) Create(ctx context.Context, sc model.Scope, opts repository.CreateOptions) (model.EmergencyBroadcast, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := opts.Broadcast
	if b.ID == "" {
		b.ID = "generated-id"
	}
	r.broadcasts[b.ID] = b
	return b, nil
}

func (r *mockRepo) Detail(ctx context.Context, sc model.Scope, id string) (model.EmergencyBroadcast, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.broadcasts[id]
	if !ok {
		return model.EmergencyBroadcast{}, repository.ErrNotFound
	}
	return b, nil
}

func (r *mockRepo) Get(ctx context.Context, sc model.Scope, opts repository.GetOptions) ([]model.EmergencyBroadcast, paginator.Paginator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.EmergencyBroadcast
	for _, b := range r.broadcasts {
		out = append(out, b)
	}
	return out, paginator.Paginator{Total: int64(len(out))}, nil
}

func (r *mockRepo) Update(ctx context.Context, sc model.Scope, opts repository.UpdateOptions) (model.EmergencyBroadcast, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.broadcasts[opts.ID]
	if !ok {
		return model.EmergencyBroadcast{}, repository.ErrNotFound
	}
	if opts.Title != nil {
		b.Title = *opts.Title
	}
	if opts.Message != nil {
		b.Message = *opts.Message
	}
	if len(opts.Channels) > 0 {
		b.Channels = opts.Channels
	}
	if opts.ExpiresAt != nil {
		b.ExpiresAt = *opts.ExpiresAt
	}
	r.broadcasts[opts.ID] = b
	return b, nil
}

func (r *mockRepo) UpdateStatus(ctx context.Context, sc model.Scope, opts repository.UpdateStatusOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.broadcasts[opts.ID]
	if !ok {
		return repository.ErrNotFound
	}

	allowed := false
	for _, from := range opts.From {
		if b.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return repository.ErrStatusConflict
	}

	b.Status = opts.To
	if opts.TotalRecipients != nil {
		b.TotalRecipients = *opts.TotalRecipients
	}
	if opts.DeliveredCount != nil {
		b.DeliveredCount = *opts.DeliveredCount
	}
	if opts.FailedCount != nil {
		b.FailedCount = *opts.FailedCount
	}
	if opts.CancelReason != nil {
		b.CancelReason = opts.CancelReason
	}
	if opts.SentAt != nil {
		b.SentAt = opts.SentAt
	}
	r.broadcasts[opts.ID] = b
	r.transitions = append(r.transitions, opts)
	return nil
}

func (r *mockRepo) IncrementAcknowledged(ctx context.Context, sc model.Scope, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.broadcasts[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.AcknowledgedCount++
	r.broadcasts[id] = b
	r.acks++
	return nil
}

func (r *mockRepo) ListStale(ctx context.Context, status model.BroadcastStatus, olderThan time.Time, limit int) ([]model.EmergencyBroadcast, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.EmergencyBroadcast
	for _, b := range r.broadcasts {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *mockRepo) status(id string) model.BroadcastStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.broadcasts[id].Status
}

type stubResolver struct {
	recipients []model.Recipient
	err        error
}

func (s stubResolver) Resolve(ctx context.Context, sc model.Scope, b model.EmergencyBroadcast) ([]model.Recipient, error) {
	return s.recipients, s.err
}

type stubEngine struct {
	outcomes []model.DeliveryOutcome
}

func (s stubEngine) DeliverToRecipients(ctx context.Context, input delivery.DeliverInput) []model.DeliveryOutcome {
	return s.outcomes
}

type noopAudit struct{}

func (noopAudit) Record(ctx context.Context, sc model.Scope, action, resourceID, details string) {}

func newTestUseCase(repo repository.Repository, resolver recipient.Resolver, engine delivery.Engine, redis *fakeRedis) *implUseCase {
	uc := New(testLogger(), repo, resolver, engine, redis, noopAudit{})
	uc.clock = func() time.Time { return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC) }
	return uc
}

func draftBroadcast(id string) model.EmergencyBroadcast {
	return model.EmergencyBroadcast{
		ID:       id,
		Type:     model.EmergencyFire,
		Priority: model.PriorityCritical,
		Title:    "Fire",
		Message:  "Evacuate now",
		Audience: []model.Audience{model.AudienceAllParents},
		Channels: []model.Channel{model.ChannelSMS},
		Status:   model.BroadcastDraft,
		SentBy:   "admin-1",
	}
}

var testScope = model.Scope{ActorID: "admin-1", Role: model.RoleAdmin}

// --- Create ---

func TestCreateAppliesDefaults(t *testing.T) {
	repo := newMockRepo()
	uc := newTestUseCase(repo, stubResolver{}, stubEngine{}, newFakeRedis())

	b, err := uc.Create(context.Background(), testScope, broadcast.CreateInput{
		Type:     model.EmergencyLockdown,
		Title:    "Lockdown",
		Message:  "Shelter in your classroom",
		Audience: []model.Audience{model.AudienceAllStaff},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.Priority != model.PriorityHigh {
		t.Errorf("priority = %q, want HIGH from type", b.Priority)
	}
	if len(b.Channels) != 3 {
		t.Errorf("channels = %v, want the HIGH default set", b.Channels)
	}
	wantExpiry := uc.clock().Add(24 * time.Hour)
	if !b.ExpiresAt.Equal(wantExpiry) {
		t.Errorf("expiresAt = %v, want %v", b.ExpiresAt, wantExpiry)
	}
	if b.Status != model.BroadcastDraft {
		t.Errorf("status = %q, want DRAFT", b.Status)
	}
	if b.SentBy != "admin-1" {
		t.Errorf("sentBy = %q, want actor id", b.SentBy)
	}
}

func TestCreateCriticalExpiresInOneHour(t *testing.T) {
	uc := newTestUseCase(newMockRepo(), stubResolver{}, stubEngine{}, newFakeRedis())

	b, err := uc.Create(context.Background(), testScope, broadcast.CreateInput{
		Type:     model.EmergencyActiveThreat,
		Title:    "Threat",
		Message:  "Lockdown now",
		Audience: []model.Audience{model.AudienceAllParents},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := uc.clock().Add(time.Hour); !b.ExpiresAt.Equal(want) {
		t.Errorf("expiresAt = %v, want %v", b.ExpiresAt, want)
	}
	if len(b.Channels) != 4 {
		t.Errorf("channels = %v, want all four for CRITICAL", b.Channels)
	}
}

func TestCreateExplicitOverridesKept(t *testing.T) {
	uc := newTestUseCase(newMockRepo(), stubResolver{}, stubEngine{}, newFakeRedis())

	p := model.PriorityLow
	expiry := time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)
	b, err := uc.Create(context.Background(), testScope, broadcast.CreateInput{
		Type:      model.EmergencyFire,
		Priority:  &p,
		Title:     "Drill",
		Message:   "Scheduled fire drill",
		Audience:  []model.Audience{model.AudienceAllStaff},
		Channels:  []model.Channel{model.ChannelPush},
		ExpiresAt: &expiry,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Priority != model.PriorityLow {
		t.Errorf("explicit priority overridden: %q", b.Priority)
	}
	if len(b.Channels) != 1 || b.Channels[0] != model.ChannelPush {
		t.Errorf("explicit channels overridden: %v", b.Channels)
	}
	if !b.ExpiresAt.Equal(expiry) {
		t.Errorf("explicit expiry overridden: %v", b.ExpiresAt)
	}
}

func TestCreateValidation(t *testing.T) {
	uc := newTestUseCase(newMockRepo(), stubResolver{}, stubEngine{}, newFakeRedis())

	tests := []struct {
		name  string
		input broadcast.CreateInput
	}{
		{"unknown type", broadcast.CreateInput{Type: "VOLCANO", Title: "t", Message: "m",
			Audience: []model.Audience{model.AudienceAllStaff}}},
		{"missing title", broadcast.CreateInput{Type: model.EmergencyFire, Message: "m",
			Audience: []model.Audience{model.AudienceAllStaff}}},
		{"missing message", broadcast.CreateInput{Type: model.EmergencyFire, Title: "t",
			Audience: []model.Audience{model.AudienceAllStaff}}},
		{"no audience", broadcast.CreateInput{Type: model.EmergencyFire, Title: "t", Message: "m"}},
		{"bad channel", broadcast.CreateInput{Type: model.EmergencyFire, Title: "t", Message: "m",
			Audience: []model.Audience{model.AudienceAllStaff},
			Channels: []model.Channel{"CARRIER_PIGEON"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.Create(context.Background(), testScope, tt.input); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

// --- Send ---

func TestSendHappyPath(t *testing.T) {
	repo := newMockRepo(draftBroadcast("b1"))
	redis := newFakeRedis()
	engine := stubEngine{outcomes: []model.DeliveryOutcome{
		{RecipientID: "r1", Channel: model.ChannelSMS, Status: model.DeliveryDelivered, Attempts: 1},
		{RecipientID: "r2", Channel: model.ChannelSMS, Status: model.DeliveryDelivered, Attempts: 2},
	}}
	resolver := stubResolver{recipients: []model.Recipient{
		{ID: "r1", Phone: "+1"}, {ID: "r2", Phone: "+2"},
	}}
	uc := newTestUseCase(repo, resolver, engine, redis)

	out, err := uc.Send(context.Background(), testScope, "b1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.Success {
		t.Error("send should report success")
	}
	if out.TotalRecipients != 2 || out.Sent != 2 || out.Failed != 0 {
		t.Errorf("output = %+v, want total=2 sent=2 failed=0", out)
	}
	if got := repo.status("b1"); got != model.BroadcastSent {
		t.Errorf("final status = %q, want SENT", got)
	}

	// Lock must be released for a later resend attempt to at least reach
	// the status guard.
	if locked, _ := redis.Exists(context.Background(), sendLockKey("b1")); locked {
		t.Error("send lock not released")
	}
	if len(redis.published) < 2 {
		t.Errorf("expected start and completion progress events, got %d", len(redis.published))
	}
}

func TestSendPartialFailureStillCompletes(t *testing.T) {
	repo := newMockRepo(draftBroadcast("b1"))
	engine := stubEngine{outcomes: []model.DeliveryOutcome{
		{RecipientID: "r1", Channel: model.ChannelSMS, Status: model.DeliveryDelivered, Attempts: 1},
		{RecipientID: "r2", Channel: model.ChannelSMS, Status: model.DeliveryFailed, Attempts: 3, Error: "provider down"},
	}}
	resolver := stubResolver{recipients: []model.Recipient{
		{ID: "r1", Phone: "+1"}, {ID: "r2", Phone: "+2"},
	}}
	uc := newTestUseCase(repo, resolver, engine, newFakeRedis())

	out, err := uc.Send(context.Background(), testScope, "b1")
	if err != nil {
		t.Fatalf("partial failure must not error the send: %v", err)
	}
	if out.Sent != 1 || out.Failed != 1 {
		t.Errorf("output = %+v, want sent=1 failed=1", out)
	}

	b, _ := repo.Detail(context.Background(), testScope, "b1")
	if b.Status != model.BroadcastSent {
		t.Errorf("status = %q, want SENT despite failures", b.Status)
	}
	if b.DeliveredCount != 1 || b.FailedCount != 1 {
		t.Errorf("counters = delivered:%d failed:%d, want 1/1", b.DeliveredCount, b.FailedCount)
	}
}

func TestSendResolverFailureAbortsToFailed(t *testing.T) {
	repo := newMockRepo(draftBroadcast("b1"))
	resolver := stubResolver{err: errors.New("directory timeout")}
	uc := newTestUseCase(repo, resolver, stubEngine{}, newFakeRedis())

	_, err := uc.Send(context.Background(), testScope, "b1")
	if err == nil {
		t.Fatal("expected error when resolution fails")
	}
	if !errors.Is(err, broadcast.ErrRecipientResolution) {
		t.Errorf("error = %v, want ErrRecipientResolution", err)
	}
	if got := repo.status("b1"); got != model.BroadcastFailed {
		t.Errorf("status = %q, want FAILED after resolver failure", got)
	}
}

func TestSendLockConflict(t *testing.T) {
	repo := newMockRepo(draftBroadcast("b1"))
	redis := newFakeRedis()
	redis.data[sendLockKey("b1")] = "1" // another send holds the lock
	uc := newTestUseCase(repo, stubResolver{}, stubEngine{}, redis)

	_, err := uc.Send(context.Background(), testScope, "b1")
	if !errors.Is(err, broadcast.ErrSendInProgress) {
		t.Errorf("error = %v, want ErrSendInProgress", err)
	}
	if got := repo.status("b1"); got != model.BroadcastDraft {
		t.Errorf("status = %q, lock conflict must not touch the broadcast", got)
	}
}

func TestSendTerminalStates(t *testing.T) {
	for _, status := range []model.BroadcastStatus{
		model.BroadcastSent, model.BroadcastCancelled, model.BroadcastFailed,
	} {
		t.Run(string(status), func(t *testing.T) {
			b := draftBroadcast("b1")
			b.Status = status
			uc := newTestUseCase(newMockRepo(b), stubResolver{}, stubEngine{}, newFakeRedis())

			_, err := uc.Send(context.Background(), testScope, "b1")
			if !errors.Is(err, broadcast.ErrInvalidTransition) {
				t.Errorf("error = %v, want ErrInvalidTransition", err)
			}
		})
	}
}

func TestSendNotFound(t *testing.T) {
	uc := newTestUseCase(newMockRepo(), stubResolver{}, stubEngine{}, newFakeRedis())
	_, err := uc.Send(context.Background(), testScope, "missing")
	if !errors.Is(err, broadcast.ErrBroadcastNotFound) {
		t.Errorf("error = %v, want ErrBroadcastNotFound", err)
	}
}

func TestSendObservesMidSendCancel(t *testing.T) {
	b := draftBroadcast("b1")
	repo := newMockRepo(b)
	redis := newFakeRedis()

	// Cancel raced the send: the flag is up and the row is CANCELLED by the
	// time the fan-out returns.
	engine := cancelDuringSendEngine{repo: repo, redis: redis, id: "b1"}
	resolver := stubResolver{recipients: []model.Recipient{{ID: "r1", Phone: "+1"}}}
	uc := newTestUseCase(repo, resolver, engine, redis)

	out, err := uc.Send(context.Background(), testScope, "b1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Success {
		t.Error("cancelled send must not report success")
	}
	if got := repo.status("b1"); got != model.BroadcastCancelled {
		t.Errorf("status = %q, want CANCELLED preserved", got)
	}
}

// cancelDuringSendEngine simulates a Cancel arriving while the fan-out runs.
type cancelDuringSendEngine struct {
	repo  *mockRepo
	redis *fakeRedis
	id    string
}

func (e cancelDuringSendEngine) DeliverToRecipients(ctx context.Context, input delivery.DeliverInput) []model.DeliveryOutcome {
	_ = e.redis.Set(ctx, cancelFlagKey(e.id), "1", time.Minute)
	_ = e.repo.UpdateStatus(ctx, model.Scope{}, repository.UpdateStatusOptions{
		ID:   e.id,
		From: []model.BroadcastStatus{model.BroadcastSending},
		To:   model.BroadcastCancelled,
	})
	return []model.DeliveryOutcome{
		{RecipientID: "r1", Channel: model.ChannelSMS, Status: model.DeliveryQueued},
	}
}

// --- Cancel ---

func TestCancelDraft(t *testing.T) {
	repo := newMockRepo(draftBroadcast("b1"))
	uc := newTestUseCase(repo, stubResolver{}, stubEngine{}, newFakeRedis())

	if err := uc.Cancel(context.Background(), testScope, "b1", "false alarm"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, _ := repo.Detail(context.Background(), testScope, "b1")
	if b.Status != model.BroadcastCancelled {
		t.Errorf("status = %q, want CANCELLED", b.Status)
	}
	if b.CancelReason == nil || *b.CancelReason != "false alarm" {
		t.Errorf("cancel reason not recorded: %v", b.CancelReason)
	}
}

func TestCancelSendingRaisesFlag(t *testing.T) {
	b := draftBroadcast("b1")
	b.Status = model.BroadcastSending
	repo := newMockRepo(b)
	redis := newFakeRedis()
	uc := newTestUseCase(repo, stubResolver{}, stubEngine{}, redis)

	if err := uc.Cancel(context.Background(), testScope, "b1", "situation resolved"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if flagged, _ := redis.Exists(context.Background(), cancelFlagKey("b1")); !flagged {
		t.Error("mid-send cancel must raise the cancel flag")
	}
	if got := repo.status("b1"); got != model.BroadcastCancelled {
		t.Errorf("status = %q, want CANCELLED", got)
	}
}

func TestCancelTerminalRejected(t *testing.T) {
	for _, status := range []model.BroadcastStatus{
		model.BroadcastSent, model.BroadcastCancelled, model.BroadcastFailed,
	} {
		t.Run(string(status), func(t *testing.T) {
			b := draftBroadcast("b1")
			b.Status = status
			uc := newTestUseCase(newMockRepo(b), stubResolver{}, stubEngine{}, newFakeRedis())

			err := uc.Cancel(context.Background(), testScope, "b1", "too late")
			if !errors.Is(err, broadcast.ErrInvalidTransition) {
				t.Errorf("error = %v, want ErrInvalidTransition", err)
			}
		})
	}
}

// --- Acknowledge ---

func TestAcknowledge(t *testing.T) {
	b := draftBroadcast("b1")
	b.Status = model.BroadcastSent
	b.RequiresAcknowledgment = true
	repo := newMockRepo(b)
	uc := newTestUseCase(repo, stubResolver{}, stubEngine{}, newFakeRedis())

	now := time.Now()
	if err := uc.Acknowledge(context.Background(), testScope, "b1", "r1", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Repeated acknowledgment counts again: the counter reads as events,
	// not unique recipients.
	if err := uc.Acknowledge(context.Background(), testScope, "b1", "r1", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := repo.Detail(context.Background(), testScope, "b1")
	if got.AcknowledgedCount != 2 {
		t.Errorf("acknowledgedCount = %d, want 2", got.AcknowledgedCount)
	}
}

func TestAcknowledgeGuards(t *testing.T) {
	t.Run("not required", func(t *testing.T) {
		b := draftBroadcast("b1")
		b.Status = model.BroadcastSent
		uc := newTestUseCase(newMockRepo(b), stubResolver{}, stubEngine{}, newFakeRedis())

		err := uc.Acknowledge(context.Background(), testScope, "b1", "r1", time.Now())
		if !errors.Is(err, broadcast.ErrAckNotRequired) {
			t.Errorf("error = %v, want ErrAckNotRequired", err)
		}
	})

	t.Run("not sent yet", func(t *testing.T) {
		b := draftBroadcast("b1")
		b.RequiresAcknowledgment = true
		uc := newTestUseCase(newMockRepo(b), stubResolver{}, stubEngine{}, newFakeRedis())

		err := uc.Acknowledge(context.Background(), testScope, "b1", "r1", time.Now())
		if !errors.Is(err, broadcast.ErrNotSent) {
			t.Errorf("error = %v, want ErrNotSent", err)
		}
	})
}

// --- Status ---

func TestStatusFallsBackToCounters(t *testing.T) {
	b := draftBroadcast("b1")
	b.Status = model.BroadcastSent
	b.TotalRecipients = 10
	b.DeliveredCount = 7
	b.FailedCount = 2
	uc := newTestUseCase(newMockRepo(b), stubResolver{}, stubEngine{}, newFakeRedis())

	out, err := uc.Status(context.Background(), testScope, "b1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Stats.Total != 10 || out.Stats.Delivered != 7 || out.Stats.Failed != 2 || out.Stats.Pending != 1 {
		t.Errorf("stats = %+v, want 10/7/2/1 from counters", out.Stats)
	}
	if len(out.RecentDeliveries) != 0 {
		t.Errorf("no retained outcomes expected, got %d", len(out.RecentDeliveries))
	}
}

func TestStatusUsesRetainedOutcomes(t *testing.T) {
	b := draftBroadcast("b1")
	repo := newMockRepo(b)
	resolver := stubResolver{recipients: []model.Recipient{{ID: "r1", Phone: "+1"}}}
	engine := stubEngine{outcomes: []model.DeliveryOutcome{
		{RecipientID: "r1", Channel: model.ChannelSMS, Status: model.DeliveryDelivered, Attempts: 1},
	}}
	uc := newTestUseCase(repo, resolver, engine, newFakeRedis())

	if _, err := uc.Send(context.Background(), testScope, "b1"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	out, err := uc.Status(context.Background(), testScope, "b1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.RecentDeliveries) != 1 {
		t.Fatalf("retained outcomes = %d, want 1", len(out.RecentDeliveries))
	}
	if out.Stats.Delivered != 1 || out.Stats.Total != 1 {
		t.Errorf("stats = %+v, want total=1 delivered=1", out.Stats)
	}
}

func TestStatusNotFound(t *testing.T) {
	uc := newTestUseCase(newMockRepo(), stubResolver{}, stubEngine{}, newFakeRedis())
	_, err := uc.Status(context.Background(), testScope, "missing")
	if !errors.Is(err, broadcast.ErrBroadcastNotFound) {
		t.Errorf("error = %v, want ErrBroadcastNotFound", err)
	}
}
