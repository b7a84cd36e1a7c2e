package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreFile     = "file"
	StoreSqlite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMemory   = "memory"
)

// Config holds all runtime settings of the map route service.
type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	RouteStore  string
	DataPath    string
	DBPath      string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	StorageQuotaBytes int64
	WalkingSpeedKmh   float64

	KafkaBrokers []string
	KafkaTopic   string

	SeedPath string

	// SessionIdleTTL drops map sessions unused for this long. Zero disables the sweep.
	SessionIdleTTL time.Duration
}

// LoadDotEnv loads a local .env file when present. A missing file is not an error.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads configuration from the environment (after an optional .env file).
func Load() (*Config, error) {
	LoadDotEnv()

	cfg := &Config{
		Port:          Get("PORT", "8080"),
		AppEnv:        Get("APP_ENV", "development"),
		LogLevel:      Get("LOG_LEVEL", ""),
		RouteStore:    strings.ToLower(Get("ROUTE_STORE", StoreFile)),
		DataPath:      Get("DATA_PATH", "data/storage.json"),
		DBPath:        Get("DB_PATH", "data/app.db"),
		DatabaseURL:   Get("DATABASE_URL", ""),
		RedisAddr:     Get("REDIS_ADDR", "localhost:6379"),
		RedisPassword: Get("REDIS_PASSWORD", ""),
		KafkaTopic:    Get("KAFKA_TOPIC", "route.events"),
		SeedPath:      Get("SEED_PATH", ""),
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(Get("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("config: REDIS_DB: %w", err)
	}

	if cfg.StorageQuotaBytes, err = strconv.ParseInt(Get("STORAGE_QUOTA_BYTES", "5242880"), 10, 64); err != nil {
		return nil, fmt.Errorf("config: STORAGE_QUOTA_BYTES: %w", err)
	}

	if cfg.WalkingSpeedKmh, err = strconv.ParseFloat(Get("WALKING_SPEED_KMH", "5"), 64); err != nil {
		return nil, fmt.Errorf("config: WALKING_SPEED_KMH: %w", err)
	}

	if cfg.SessionIdleTTL, err = time.ParseDuration(Get("SESSION_IDLE_TTL", "30m")); err != nil {
		return nil, fmt.Errorf("config: SESSION_IDLE_TTL: %w", err)
	}

	for _, b := range strings.Split(Get("KAFKA_BROKERS", ""), ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.RouteStore {
	case StoreFile, StoreSqlite, StoreRedis, StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required when ROUTE_STORE=postgres")
		}
	default:
		return fmt.Errorf("config: unknown ROUTE_STORE %q", c.RouteStore)
	}

	if c.WalkingSpeedKmh <= 0 {
		return fmt.Errorf("config: WALKING_SPEED_KMH must be positive, got %v", c.WalkingSpeedKmh)
	}

	if c.SessionIdleTTL < 0 {
		return fmt.Errorf("config: SESSION_IDLE_TTL must not be negative, got %s", c.SessionIdleTTL)
	}

	if c.StorageQuotaBytes < 0 {
		return fmt.Errorf("config: STORAGE_QUOTA_BYTES must not be negative, got %d", c.StorageQuotaBytes)
	}

	return nil
}
