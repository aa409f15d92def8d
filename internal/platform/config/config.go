package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

// EnvPrefix scopes every environment variable read by the service.
// Nested keys use a double underscore: STATUSGATE_PROVIDER__BASE_URL.
const EnvPrefix = "STATUSGATE_"

// Store and queue backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendKafka    = "kafka"
)

// Secret sources.
const (
	SecretsFromEnv  = "env"
	SecretsFromFile = "file"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Provider ProviderConfig `koanf:"provider"`
	Status   StatusConfig   `koanf:"status"`
	Store    StoreConfig    `koanf:"store"`
	Redis    RedisConfig    `koanf:"redis"`
	Postgres PostgresConfig `koanf:"postgres"`
	Queue    QueueConfig    `koanf:"queue"`
	Kafka    KafkaConfig    `koanf:"kafka"`
	Secrets  SecretsConfig  `koanf:"secrets"`
	Logger   LoggerConfig   `koanf:"logger"`
}

type ServerConfig struct {
	Addr              string        `koanf:"addr" validate:"required"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout" validate:"required"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout" validate:"required"`
}

// ProviderConfig points at the external verification provider.
type ProviderConfig struct {
	BaseURL string `koanf:"base_url" validate:"required,url"`
	// Timeout bounds each outbound call on the interactive path.
	Timeout         time.Duration `koanf:"timeout" validate:"required"`
	Reason          string        `koanf:"reason" validate:"required"`
	BreakerFailures int           `koanf:"breaker_failures"`
	BreakerCooldown time.Duration `koanf:"breaker_cooldown"`
}

// StatusConfig holds the record lifetimes.
type StatusConfig struct {
	PendingTTL  time.Duration `koanf:"pending_ttl" validate:"required"`
	ResolvedTTL time.Duration `koanf:"resolved_ttl" validate:"required"`
}

// StoreConfig selects the backend and names the two Postgres tables.
type StoreConfig struct {
	Backend       string `koanf:"backend" validate:"required,oneof=memory redis postgres"`
	ResolvedTable string `koanf:"resolved_table" validate:"required"`
	PendingTable  string `koanf:"pending_table" validate:"required"`
}

type RedisConfig struct {
	URL string `koanf:"url"`
	// KeyPrefix namespaces both stores' keys: <prefix>resolved:<id>.
	KeyPrefix    string        `koanf:"key_prefix"`
	PoolSize     int           `koanf:"pool_size"`
	MinIdleConns int           `koanf:"min_idle_conns"`
	DialTimeout  time.Duration `koanf:"dial_timeout"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

type PostgresConfig struct {
	DSN             string        `koanf:"dsn"`
	MaxConns        int           `koanf:"max_conns"`
	MinConns        int           `koanf:"min_conns"`
	MaxConnLifetime time.Duration `koanf:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `koanf:"max_conn_idle_time"`
}

// QueueConfig controls bulk fan-out and the background consumer.
type QueueConfig struct {
	Backend string `koanf:"backend" validate:"required,oneof=memory kafka"`
	// ResolveTimeout is the per-message budget; larger than the HTTP path.
	ResolveTimeout  time.Duration `koanf:"resolve_timeout" validate:"required"`
	ProviderTimeout time.Duration `koanf:"provider_timeout" validate:"required"`
	Buffer          int           `koanf:"buffer" validate:"min=1"`
}

type KafkaConfig struct {
	Brokers       []string `koanf:"brokers"`
	Topic         string   `koanf:"topic"`
	ConsumerGroup string   `koanf:"consumer_group"`
	Partitions    int      `koanf:"partitions"`
}

type SecretsConfig struct {
	Source string `koanf:"source" validate:"required,oneof=env file"`
	File   string `koanf:"file"`
}

type LoggerConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json text"`
}

func defaults() map[string]any {
	return map[string]any{
		"server.addr":                ":8080",
		"server.read_header_timeout": 5 * time.Second,
		"server.shutdown_timeout":    10 * time.Second,

		"provider.timeout":          8 * time.Second,
		"provider.reason":           "Office entry",
		"provider.breaker_failures": 5,
		"provider.breaker_cooldown": 10 * time.Second,

		"status.pending_ttl":  54 * time.Minute,
		"status.resolved_ttl": 21*time.Hour + 36*time.Minute,

		"store.backend":        BackendMemory,
		"store.resolved_table": "user_status",
		"store.pending_table":  "pending_requests",

		"redis.key_prefix":     "status:",
		"redis.pool_size":      10,
		"redis.min_idle_conns": 2,
		"redis.dial_timeout":   5 * time.Second,
		"redis.read_timeout":   3 * time.Second,
		"redis.write_timeout":  3 * time.Second,

		"postgres.max_conns":          10,
		"postgres.min_conns":          1,
		"postgres.max_conn_lifetime":  time.Hour,
		"postgres.max_conn_idle_time": 30 * time.Minute,

		"queue.backend":          BackendMemory,
		"queue.resolve_timeout":  25 * time.Second,
		"queue.provider_timeout": 20 * time.Second,
		"queue.buffer":           256,

		"kafka.topic":          "status-requests",
		"kafka.consumer_group": "statusgate",
		"kafka.partitions":     6,

		"secrets.source": SecretsFromEnv,

		"logger.level":  "info",
		"logger.format": "json",
	}
}

// Load builds the configuration from defaults overlaid with STATUSGATE_*
// environment variables (a .env file in the working directory is loaded
// first). Missing or invalid required values are returned as an error; the
// caller is expected to exit.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, EnvPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if err := cfg.validateBackends(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateBackends checks the settings that are only required for the
// selected backends.
func (c *Config) validateBackends() error {
	switch c.Store.Backend {
	case BackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("config validation failed: redis.url is required for the redis store")
		}
	case BackendPostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("config validation failed: postgres.dsn is required for the postgres store")
		}
	}
	if c.Queue.Backend == BackendKafka {
		if len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "" || c.Kafka.ConsumerGroup == "" {
			return fmt.Errorf("config validation failed: kafka.brokers, kafka.topic and kafka.consumer_group are required for the kafka queue")
		}
	}
	if c.Secrets.Source == SecretsFromFile && c.Secrets.File == "" {
		return fmt.Errorf("config validation failed: secrets.file is required when secrets.source=file")
	}
	return nil
}
