package httpserver

import (
	"database/sql"
	"errors"

	"broadcast-srv/internal/broadcast"
	"broadcast-srv/internal/queue"
	"broadcast-srv/pkg/discord"
	"broadcast-srv/pkg/log"
	pkgRedis "broadcast-srv/pkg/redis"

	"github.com/gin-gonic/gin"
)

// HTTPServer holds the API surface and its dependencies. New() only wires
// and validates; Run() (in httpserver.go) starts serving.
type HTTPServer struct {
	gin         *gin.Engine
	logger      log.Logger
	port        int
	environment string

	broadcastUC broadcast.UseCase
	enqueuer    queue.Enqueuer

	db      *sql.DB
	redis   pkgRedis.IRedis
	discord discord.IDiscord
}

// Config is the constructor input for HTTPServer.
type Config struct {
	Port        int
	Environment string

	BroadcastUC broadcast.UseCase
	Enqueuer    queue.Enqueuer

	DB      *sql.DB
	Redis   pkgRedis.IRedis
	Discord discord.IDiscord
}

// New creates a new HTTPServer. It does not start any goroutines; use
// (*HTTPServer).Run() to start the service.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &HTTPServer{
		gin:         gin.New(),
		logger:      logger,
		port:        cfg.Port,
		environment: cfg.Environment,

		broadcastUC: cfg.BroadcastUC,
		enqueuer:    cfg.Enqueuer,

		db:      cfg.DB,
		redis:   cfg.Redis,
		discord: cfg.Discord,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate ensures all required dependencies are provided.
func (srv *HTTPServer) validate() error {
	if srv.logger == nil {
		return errors.New("logger is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.broadcastUC == nil {
		return errors.New("broadcast usecase is required")
	}
	if srv.enqueuer == nil {
		return errors.New("queue enqueuer is required")
	}
	if srv.db == nil {
		return errors.New("database handle is required")
	}
	if srv.redis == nil {
		return errors.New("Redis client is required")
	}

	return nil
}
