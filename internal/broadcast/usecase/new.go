package usecase

import (
	"time"

	"broadcast-srv/internal/audit"
	"broadcast-srv/internal/broadcast"
	"broadcast-srv/internal/broadcast/repository"
	"broadcast-srv/internal/delivery"
	"broadcast-srv/internal/recipient"
	pkgLog "broadcast-srv/pkg/log"
	pkgRedis "broadcast-srv/pkg/redis"
)

const (
	// sendLockTTL bounds how long a crashed worker can hold the send lock.
	sendLockTTL = 15 * time.Minute
	// cancelFlagTTL keeps the mid-send cancel flag around long enough for a
	// slow fan-out to observe it.
	cancelFlagTTL = 24 * time.Hour
	// recentOutcomesCap bounds the per-broadcast delivery outcome retention.
	recentOutcomesCap = 200
)

type implUseCase struct {
	l        pkgLog.Logger
	repo     repository.Repository
	resolver recipient.Resolver
	engine   delivery.Engine
	redis    pkgRedis.IRedis
	audit    audit.Logger
	recent   *recentStore
	clock    func() time.Time
}

var _ broadcast.UseCase = &implUseCase{}

func New(
	l pkgLog.Logger,
	repo repository.Repository,
	resolver recipient.Resolver,
	engine delivery.Engine,
	redis pkgRedis.IRedis,
	auditLogger audit.Logger,
) *implUseCase {
	return &implUseCase{
		l:        l,
		repo:     repo,
		resolver: resolver,
		engine:   engine,
		redis:    redis,
		audit:    auditLogger,
		recent:   newRecentStore(recentOutcomesCap),
		clock:    time.Now,
	}
}

func sendLockKey(id string) string   { return "broadcast:send:lock:" + id }
func cancelFlagKey(id string) string { return "broadcast:cancel:" + id }
func progressChannel(id string) string {
	return "broadcast:progress:" + id
}
