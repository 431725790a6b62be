package queue

import (
	"time"

	"github.com/friendsofgo/errors"
	"github.com/hibiken/asynq"
)

const (
	// QueueBroadcasts carries send tasks. It outweighs default so that
	// emergency dispatch is never starved by housekeeping tasks.
	QueueBroadcasts = "broadcasts"

	broadcastsWeight = 10
	defaultWeight    = 1
)

// Config holds queue connection and processing settings.
type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Concurrency   int
	MaxRetry      int
}

// NewClient creates an asynq client connected to Redis.
func NewClient(cfg Config) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// NewServer creates an asynq server connected to Redis.
func NewServer(cfg Config) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
		asynq.Config{
			Concurrency: cfg.Concurrency,
			Queues: map[string]int{
				QueueBroadcasts: broadcastsWeight,
				"default":       defaultWeight,
			},
			RetryDelayFunc: func(n int, e error, t *asynq.Task) time.Duration {
				// 30s, 60s, 120s, ... between queue-level retries. Per-channel
				// delivery retries are handled inside the engine, not here.
				return time.Duration(30*(1<<uint(n-1))) * time.Second
			},
		},
	)
}

// Enqueuer hands broadcast send tasks to the queue. The HTTP layer and the
// reaper both depend on this interface rather than the asynq client.
type Enqueuer interface {
	EnqueueSendBroadcast(p SendBroadcastPayload) error
}

type implEnqueuer struct {
	client   *asynq.Client
	maxRetry int
}

var _ Enqueuer = &implEnqueuer{}

func NewEnqueuer(client *asynq.Client, maxRetry int) *implEnqueuer {
	return &implEnqueuer{
		client:   client,
		maxRetry: maxRetry,
	}
}

func (q *implEnqueuer) EnqueueSendBroadcast(p SendBroadcastPayload) error {
	task, err := NewSendBroadcastTask(p)
	if err != nil {
		return errors.Wrap(err, "creating task")
	}

	if _, err := q.client.Enqueue(task,
		asynq.MaxRetry(q.maxRetry),
		asynq.Queue(QueueBroadcasts),
	); err != nil {
		return errors.Wrap(err, "enqueuing task")
	}

	return nil
}
