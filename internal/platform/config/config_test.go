package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("STATUSGATE_PROVIDER__BASE_URL", "https://provider.test")
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		setRequired(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, 8*time.Second, cfg.Provider.Timeout)
		assert.Equal(t, 54*time.Minute, cfg.Status.PendingTTL)
		assert.Equal(t, 21*time.Hour+36*time.Minute, cfg.Status.ResolvedTTL)
		assert.Equal(t, BackendMemory, cfg.Store.Backend)
		assert.Equal(t, "user_status", cfg.Store.ResolvedTable)
		assert.Equal(t, BackendMemory, cfg.Queue.Backend)
		assert.Equal(t, "status:", cfg.Redis.KeyPrefix)
	})

	t.Run("environment overrides nested keys", func(t *testing.T) {
		setRequired(t)
		t.Setenv("STATUSGATE_SERVER__ADDR", ":9090")
		t.Setenv("STATUSGATE_PROVIDER__TIMEOUT", "3s")
		t.Setenv("STATUSGATE_STORE__BACKEND", "redis")
		t.Setenv("STATUSGATE_REDIS__URL", "redis://localhost:6379/0")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.Server.Addr)
		assert.Equal(t, 3*time.Second, cfg.Provider.Timeout)
		assert.Equal(t, BackendRedis, cfg.Store.Backend)
		assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	})

	t.Run("missing provider URL is fatal", func(t *testing.T) {
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config validation failed")
	})

	t.Run("unknown store backend is rejected", func(t *testing.T) {
		setRequired(t)
		t.Setenv("STATUSGATE_STORE__BACKEND", "dynamo")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("redis store requires a URL", func(t *testing.T) {
		setRequired(t)
		t.Setenv("STATUSGATE_STORE__BACKEND", "redis")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis.url")
	})

	t.Run("kafka queue requires brokers", func(t *testing.T) {
		setRequired(t)
		t.Setenv("STATUSGATE_QUEUE__BACKEND", "kafka")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "kafka.brokers")
	})

	t.Run("file secrets require a path", func(t *testing.T) {
		setRequired(t)
		t.Setenv("STATUSGATE_SECRETS__SOURCE", "file")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secrets.file")
	})
}
