package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment Configuration
	Environment EnvironmentConfig

	// Server Configuration
	Server ServerConfig
	Logger LoggerConfig

	// Storage Configuration
	Postgres PostgresConfig
	Redis    RedisConfig

	// Dispatch Configuration
	Queue    QueueConfig
	Delivery DeliveryConfig
	Gateway  GatewayConfig
	Reaper   ReaperConfig

	// Monitoring & Notification Configuration
	Discord DiscordConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string
}

// ServerConfig is the configuration for the HTTP server.
type ServerConfig struct {
	Host string
	Port int
	Mode string
}

// LoggerConfig is the configuration for the logger.
type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// PostgresConfig is the configuration for PostgreSQL.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig is the configuration for Redis.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// QueueConfig is the configuration for the asynq task queue.
type QueueConfig struct {
	Concurrency int
	MaxRetry    int
}

// DeliveryConfig tunes the fan-out engine.
type DeliveryConfig struct {
	Workers        int
	MaxAttempts    int
	BaseBackoff    time.Duration
	RatePerChannel float64
}

// GatewayConfig points the channel senders at the communication relay.
type GatewayConfig struct {
	BaseURL     string
	APIKey      string
	FromAddress string
	FromName    string
	Timeout     time.Duration
}

// ReaperConfig tunes the stale-broadcast sweep on the worker.
type ReaperConfig struct {
	Interval       time.Duration
	StaleThreshold time.Duration
	BatchSize      int
}

// DiscordConfig is the configuration for Discord webhook notifications.
type DiscordConfig struct {
	WebhookID    string
	WebhookToken string
}

// Load loads configuration using Viper.
func Load() (*Config, error) {
	viper.SetConfigName("broadcast-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/broadcast/")

	// Enable environment variable override
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Read config file (optional, env vars are enough on their own)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment
	cfg.Environment.Name = viper.GetString("environment.name")

	// Server
	cfg.Server.Host = viper.GetString("server.host")
	cfg.Server.Port = viper.GetInt("server.port")
	cfg.Server.Mode = viper.GetString("server.mode")

	// Logger
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Postgres
	cfg.Postgres.Host = viper.GetString("postgres.host")
	cfg.Postgres.Port = viper.GetInt("postgres.port")
	cfg.Postgres.User = viper.GetString("postgres.user")
	cfg.Postgres.Password = viper.GetString("postgres.password")
	cfg.Postgres.DBName = viper.GetString("postgres.dbname")
	cfg.Postgres.SSLMode = viper.GetString("postgres.sslmode")

	// Redis
	cfg.Redis.Host = viper.GetString("redis.host")
	cfg.Redis.Port = viper.GetInt("redis.port")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")

	// Queue
	cfg.Queue.Concurrency = viper.GetInt("queue.concurrency")
	cfg.Queue.MaxRetry = viper.GetInt("queue.max_retry")

	// Delivery
	cfg.Delivery.Workers = viper.GetInt("delivery.workers")
	cfg.Delivery.MaxAttempts = viper.GetInt("delivery.max_attempts")
	cfg.Delivery.BaseBackoff = viper.GetDuration("delivery.base_backoff")
	cfg.Delivery.RatePerChannel = viper.GetFloat64("delivery.rate_per_channel")

	// Gateway
	cfg.Gateway.BaseURL = viper.GetString("gateway.base_url")
	cfg.Gateway.APIKey = viper.GetString("gateway.api_key")
	cfg.Gateway.FromAddress = viper.GetString("gateway.from_address")
	cfg.Gateway.FromName = viper.GetString("gateway.from_name")
	cfg.Gateway.Timeout = viper.GetDuration("gateway.timeout")

	// Reaper
	cfg.Reaper.Interval = viper.GetDuration("reaper.interval")
	cfg.Reaper.StaleThreshold = viper.GetDuration("reaper.stale_threshold")
	cfg.Reaper.BatchSize = viper.GetInt("reaper.batch_size")

	// Discord
	cfg.Discord.WebhookID = viper.GetString("discord.webhook_id")
	cfg.Discord.WebhookToken = viper.GetString("discord.webhook_token")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment.name", "production")

	// Server
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")

	// Logger
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.mode", "production")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("logger.color_enabled", false)

	// Postgres
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.user", "postgres")
	viper.SetDefault("postgres.password", "")
	viper.SetDefault("postgres.dbname", "broadcast")
	viper.SetDefault("postgres.sslmode", "disable")

	// Redis
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Queue
	viper.SetDefault("queue.concurrency", 10)
	viper.SetDefault("queue.max_retry", 3)

	// Delivery
	viper.SetDefault("delivery.workers", 8)
	viper.SetDefault("delivery.max_attempts", 3)
	viper.SetDefault("delivery.base_backoff", time.Second)
	viper.SetDefault("delivery.rate_per_channel", 50.0)

	// Gateway
	viper.SetDefault("gateway.base_url", "http://localhost:9090")
	viper.SetDefault("gateway.timeout", 10*time.Second)

	// Reaper
	viper.SetDefault("reaper.interval", time.Minute)
	viper.SetDefault("reaper.stale_threshold", 20*time.Minute)
	viper.SetDefault("reaper.batch_size", 50)

	// Discord
	viper.SetDefault("discord.webhook_id", "")
	viper.SetDefault("discord.webhook_token", "")
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}
	if cfg.Postgres.Host == "" {
		return fmt.Errorf("postgres host is required")
	}
	if cfg.Redis.Host == "" {
		return fmt.Errorf("redis host is required")
	}
	if cfg.Gateway.BaseURL == "" {
		return fmt.Errorf("gateway base URL is required")
	}
	return nil
}
