package usecase

import (
	"context"
	"time"

	"broadcast-srv/internal/broadcast/repository"
	"broadcast-srv/internal/model"
	"broadcast-srv/internal/queue"
	pkgLog "broadcast-srv/pkg/log"
)

// ReaperConfig tunes the stale-broadcast sweep.
type ReaperConfig struct {
	Interval       time.Duration
	StaleThreshold time.Duration
	BatchSize      int
}

// Reaper re-enqueues broadcasts stuck in SENDING after a worker crash. The
// send path tolerates resumption: the Redis lock has expired by the time the
// row counts as stale, and the status guard accepts SENDING.
type Reaper struct {
	l        pkgLog.Logger
	repo     repository.Repository
	enqueuer queue.Enqueuer
	cfg      ReaperConfig
	clock    func() time.Time
}

func NewReaper(l pkgLog.Logger, repo repository.Repository, enqueuer queue.Enqueuer, cfg ReaperConfig) *Reaper {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.StaleThreshold <= 0 {
		cfg.StaleThreshold = 20 * time.Minute
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	return &Reaper{
		l:        l,
		repo:     repo,
		enqueuer: enqueuer,
		cfg:      cfg,
		clock:    time.Now,
	}
}

// Run sweeps until the context is cancelled.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Reaper) sweep(ctx context.Context) {
	olderThan := r.clock().Add(-r.cfg.StaleThreshold)

	stale, err := r.repo.ListStale(ctx, model.BroadcastSending, olderThan, r.cfg.BatchSize)
	if err != nil {
		r.l.Errorf(ctx, "internal.broadcast.usecase.reaper.sweep.repo.ListStale: %v", err)
		return
	}

	for _, b := range stale {
		if err := r.enqueuer.EnqueueSendBroadcast(queue.SendBroadcastPayload{
			BroadcastID: b.ID,
			ActorID:     "reaper",
			ActorRole:   model.RoleSystem,
		}); err != nil {
			r.l.Errorf(ctx, "internal.broadcast.usecase.reaper.sweep.EnqueueSendBroadcast: %v", err)
			continue
		}
		r.l.Infof(ctx, "internal.broadcast.usecase.reaper.sweep: re-enqueued stale broadcast %s", b.ID)
	}
}
