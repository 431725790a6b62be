package audit

import (
	"context"
	"fmt"
	"time"

	"broadcast-srv/internal/model"
	"broadcast-srv/pkg/discord"
	pkgLog "broadcast-srv/pkg/log"
)

// Logger records who did what for compliance traceability. Records are
// fire-and-forget: a failed audit write never fails the operation it
// describes.
type Logger interface {
	Record(ctx context.Context, sc model.Scope, action, resourceID, details string)
}

type implLogger struct {
	l       pkgLog.Logger
	discord discord.IDiscord
}

var _ Logger = &implLogger{}

func New(l pkgLog.Logger, d discord.IDiscord) *implLogger {
	return &implLogger{
		l:       l,
		discord: d,
	}
}

func (a *implLogger) Record(ctx context.Context, sc model.Scope, action, resourceID, details string) {
	a.l.Infof(ctx, "audit: action=%s resource=%s actor=%s role=%s correlation=%s details=%q",
		action, resourceID, sc.ActorID, sc.Role, sc.CorrelationID, details)

	if a.discord == nil {
		return
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.discord.SendActivityLog(sendCtx, action, sc.ActorID,
			fmt.Sprintf("%s (resource %s)", details, resourceID)); err != nil {
			a.l.Warnf(sendCtx, "internal.audit.Record: activity log failed: %v", err)
		}
	}()
}
