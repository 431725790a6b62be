package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"broadcast-srv/config"
	"broadcast-srv/config/postgre"
	configRedis "broadcast-srv/config/redis"
	"broadcast-srv/internal/audit"
	broadcastRepo "broadcast-srv/internal/broadcast/repository/postgre"
	broadcastUC "broadcast-srv/internal/broadcast/usecase"
	deliveryUC "broadcast-srv/internal/delivery/usecase"
	"broadcast-srv/internal/gateway"
	"broadcast-srv/internal/model"
	"broadcast-srv/internal/queue"
	recipientRepo "broadcast-srv/internal/recipient/repository/postgre"
	recipientUC "broadcast-srv/internal/recipient/usecase"
	"broadcast-srv/pkg/discord"
	"broadcast-srv/pkg/log"

	"github.com/hibiken/asynq"
)

// The worker drains the broadcast send queue and sweeps for broadcasts
// stranded in SENDING by a crashed run.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()

	postgresDB, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
		return
	}
	defer postgre.Disconnect(ctx, postgresDB)

	redisClient, err := configRedis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Error(ctx, "Failed to connect to Redis: ", err)
		return
	}
	defer configRedis.Disconnect()

	var discordClient discord.IDiscord
	if cfg.Discord.WebhookID != "" {
		discordClient, err = discord.NewFromParts(logger, cfg.Discord.WebhookID, cfg.Discord.WebhookToken)
		if err != nil {
			logger.Error(ctx, "Failed to initialize Discord: ", err)
			return
		}
	}

	queueCfg := queue.Config{
		RedisAddr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
		Concurrency:   cfg.Queue.Concurrency,
		MaxRetry:      cfg.Queue.MaxRetry,
	}

	// Wire the broadcast core
	repo := broadcastRepo.New(logger, postgresDB)
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
	uc := broadcastUC.New(logger, repo, resolver, engine, redisClient, auditLogger)

	// Asynq server and task handlers
	asynqServer := queue.NewServer(queueCfg)

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TaskTypeSendBroadcast, func(ctx context.Context, task *asynq.Task) error {
		payload, err := queue.ParseSendBroadcastPayload(task.Payload())
		if err != nil {
			return err
		}

		sc := model.Scope{
			ActorID: payload.ActorID,
			Role:    payload.ActorRole,
			At:      time.Now(),
		}
		output, err := uc.Send(ctx, sc, payload.BroadcastID)
		if err != nil {
			return err
		}

		logger.Infof(ctx, "broadcast %s dispatched: total=%d sent=%d failed=%d",
			payload.BroadcastID, output.TotalRecipients, output.Sent, output.Failed)
		return nil
	})

	go func() {
		logger.Infof(ctx, "worker starting: concurrency=%d redis=%s",
			cfg.Queue.Concurrency, queueCfg.RedisAddr)
		if err := asynqServer.Run(mux); err != nil {
			logger.Fatalf(ctx, "worker failed to start: %v", err)
		}
	}()

	// Stale broadcast reaper
	asynqClient := queue.NewClient(queueCfg)
	defer asynqClient.Close()

	reaperCtx, reaperCancel := context.WithCancel(ctx)
	defer reaperCancel()

	reaper := broadcastUC.NewReaper(logger, repo,
		queue.NewEnqueuer(asynqClient, cfg.Queue.MaxRetry),
		broadcastUC.ReaperConfig{
			Interval:       cfg.Reaper.Interval,
			StaleThreshold: cfg.Reaper.StaleThreshold,
			BatchSize:      cfg.Reaper.BatchSize,
		})
	go reaper.Run(reaperCtx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "Stopping worker...")
	reaperCancel()
	asynqServer.Shutdown()
	logger.Info(ctx, "Worker exited gracefully")
}
