package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ROUTE_STORE", "")
	t.Setenv("WALKING_SPEED_KMH", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("STORAGE_QUOTA_BYTES", "")
	t.Setenv("SESSION_IDLE_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreFile, cfg.RouteStore)
	assert.Equal(t, 5.0, cfg.WalkingSpeedKmh)
	assert.Equal(t, int64(5242880), cfg.StorageQuotaBytes)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("ROUTE_STORE", "Redis")
	t.Setenv("WALKING_SPEED_KMH", "4.5")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SESSION_IDLE_TTL", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreRedis, cfg.RouteStore)
	assert.Equal(t, 4.5, cfg.WalkingSpeedKmh)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Zero(t, cfg.SessionIdleTTL)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	t.Setenv("ROUTE_STORE", "postgres")
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL is required")

	t.Setenv("ROUTE_STORE", "floppy")
	_, err = Load()
	assert.ErrorContains(t, err, "unknown ROUTE_STORE")

	t.Setenv("ROUTE_STORE", "memory")
	t.Setenv("WALKING_SPEED_KMH", "0")
	_, err = Load()
	assert.ErrorContains(t, err, "WALKING_SPEED_KMH must be positive")

	t.Setenv("WALKING_SPEED_KMH", "5")
	t.Setenv("SESSION_IDLE_TTL", "-1m")
	_, err = Load()
	assert.ErrorContains(t, err, "SESSION_IDLE_TTL must not be negative")
}
