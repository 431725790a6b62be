package main

import (
	"context"
	"fmt"

	"broadcast-srv/config"
	"broadcast-srv/config/postgre"
	configRedis "broadcast-srv/config/redis"
	"broadcast-srv/internal/audit"
	broadcastRepo "broadcast-srv/internal/broadcast/repository/postgre"
	broadcastUC "broadcast-srv/internal/broadcast/usecase"
	deliveryUC "broadcast-srv/internal/delivery/usecase"
	"broadcast-srv/internal/gateway"
	"broadcast-srv/internal/httpserver"
	"broadcast-srv/internal/queue"
	recipientRepo "broadcast-srv/internal/recipient/repository/postgre"
	recipientUC "broadcast-srv/internal/recipient/usecase"
	"broadcast-srv/pkg/discord"
	"broadcast-srv/pkg/log"
)

// @title       Emergency Broadcast Service
// @description School emergency broadcast delivery: priority classification, audience resolution and multi-channel fan-out.
// @version     1.0
// @host        localhost:8080
// @schemes     http
// @BasePath    /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()

	// Initialize PostgreSQL
	postgresDB, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
		return
	}
	defer postgre.Disconnect(ctx, postgresDB)
	logger.Infof(ctx, "PostgreSQL connected successfully to %s:%d/%s",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	// Initialize Redis
	redisClient, err := configRedis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Error(ctx, "Failed to connect to Redis: ", err)
		return
	}
	defer configRedis.Disconnect()
	logger.Infof(ctx, "Redis connected successfully to %s:%d", cfg.Redis.Host, cfg.Redis.Port)

	// Initialize Discord (optional)
	var discordClient discord.IDiscord
	if cfg.Discord.WebhookID != "" {
		discordClient, err = discord.NewFromParts(logger, cfg.Discord.WebhookID, cfg.Discord.WebhookToken)
		if err != nil {
			logger.Error(ctx, "Failed to initialize Discord: ", err)
			return
		}
	}

	// Initialize asynq client for async sends
	asynqClient := queue.NewClient(queue.Config{
		RedisAddr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()
	enqueuer := queue.NewEnqueuer(asynqClient, cfg.Queue.MaxRetry)

	// Wire the broadcast core
	auditLogger := audit.New(logger, discordClient)
	resolver := recipientUC.New(logger, recipientRepo.New(logger, postgresDB))
	cancelChecker := broadcastUC.NewCancelChecker(logger, redisClient)
	engine := deliveryUC.New(logger, deliveryUC.Config{
		Workers:        cfg.Delivery.Workers,
		MaxAttempts:    cfg.Delivery.MaxAttempts,
		BaseBackoff:    cfg.Delivery.BaseBackoff,
		RatePerChannel: cfg.Delivery.RatePerChannel,
	}, cancelChecker, gateway.NewSenders(gateway.Config{
		BaseURL:     cfg.Gateway.BaseURL,
		APIKey:      cfg.Gateway.APIKey,
		FromAddress: cfg.Gateway.FromAddress,
		FromName:    cfg.Gateway.FromName,
		Timeout:     cfg.Gateway.Timeout,
	})...)
	uc := broadcastUC.New(logger,
		broadcastRepo.New(logger, postgresDB), resolver, engine, redisClient, auditLogger)

	// Initialize HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:        cfg.Server.Port,
		Environment: cfg.Environment.Name,

		BroadcastUC: uc,
		Enqueuer:    enqueuer,

		DB:      postgresDB,
		Redis:   redisClient,
		Discord: discordClient,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// Run blocks until SIGINT/SIGTERM and drains in-flight requests.
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}
}
