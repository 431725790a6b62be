package http

import (
	"broadcast-srv/internal/broadcast"
	"broadcast-srv/internal/queue"
	"broadcast-srv/pkg/discord"
	"broadcast-srv/pkg/log"
)

type Handler struct {
	l        log.Logger
	uc       broadcast.UseCase
	enqueuer queue.Enqueuer
	d        discord.IDiscord
}

func New(l log.Logger, uc broadcast.UseCase, enqueuer queue.Enqueuer, d discord.IDiscord) *Handler {
	return &Handler{
		l:        l,
		uc:       uc,
		enqueuer: enqueuer,
		d:        d,
	}
}
