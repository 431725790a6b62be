package usecase

import (
	"context"

	"broadcast-srv/internal/delivery"
	pkgLog "broadcast-srv/pkg/log"
	pkgRedis "broadcast-srv/pkg/redis"
)

// redisCancelChecker reads the mid-send cancel flag. A Redis failure reads
// as "not cancelled": dispatch continuing is safer than dispatch silently
// stopping on an infrastructure blip.
type redisCancelChecker struct {
	l     pkgLog.Logger
	redis pkgRedis.IRedis
}

var _ delivery.CancelChecker = &redisCancelChecker{}

func NewCancelChecker(l pkgLog.Logger, redis pkgRedis.IRedis) *redisCancelChecker {
	return &redisCancelChecker{
		l:     l,
		redis: redis,
	}
}

func (c *redisCancelChecker) Cancelled(ctx context.Context, broadcastID string) bool {
	exists, err := c.redis.Exists(ctx, cancelFlagKey(broadcastID))
	if err != nil {
		c.l.Warnf(ctx, "internal.broadcast.usecase.Cancelled: %v", err)
		return false
	}
	return exists
}
