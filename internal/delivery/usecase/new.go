package usecase

import (
	"context"
	"time"

	"broadcast-srv/internal/delivery"
	"broadcast-srv/internal/model"
	pkgLog "broadcast-srv/pkg/log"

	"golang.org/x/time/rate"
)

const (
	// DefaultWorkers bounds the fan-out concurrency.
	DefaultWorkers = 8
	// DefaultMaxAttempts is the per-(recipient, channel) retry budget.
	DefaultMaxAttempts = 3
	// DefaultBaseBackoff is the sleep before the second attempt; it doubles
	// once per subsequent attempt.
	DefaultBaseBackoff = time.Second
)

// Config tunes the delivery engine.
type Config struct {
	Workers     int
	MaxAttempts int
	BaseBackoff time.Duration

	// RatePerChannel caps provider calls per second per channel.
	// Zero disables rate limiting.
	RatePerChannel float64
}

type implEngine struct {
	l       pkgLog.Logger
	cfg     Config
	senders map[model.Channel]delivery.Sender
	cancel  delivery.CancelChecker

	limiters map[model.Channel]*rate.Limiter

	// sleep is time.Sleep with context awareness; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

var _ delivery.Engine = &implEngine{}

// New builds a delivery engine over the given per-channel senders.
func New(l pkgLog.Logger, cfg Config, cancel delivery.CancelChecker, senders ...delivery.Sender) *implEngine {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = DefaultBaseBackoff
	}

	sm := make(map[model.Channel]delivery.Sender, len(senders))
	limiters := make(map[model.Channel]*rate.Limiter, len(senders))
	for _, s := range senders {
		sm[s.Channel()] = s
		if cfg.RatePerChannel > 0 {
			limiters[s.Channel()] = rate.NewLimiter(rate.Limit(cfg.RatePerChannel), 1)
		}
	}

	return &implEngine{
		l:        l,
		cfg:      cfg,
		senders:  sm,
		cancel:   cancel,
		limiters: limiters,
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
