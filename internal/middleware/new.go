package middleware

import (
	"broadcast-srv/pkg/discord"
	"broadcast-srv/pkg/log"
)

type Middleware struct {
	l       log.Logger
	discord discord.IDiscord
}

func New(l log.Logger, d discord.IDiscord) Middleware {
	return Middleware{
		l:       l,
		discord: d,
	}
}
