package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"map-route-service/internal/adapters/events"
	"map-route-service/internal/adapters/kv"
	"map-route-service/internal/adapters/memory"
	"map-route-service/internal/adapters/overlay"
	"map-route-service/internal/adapters/repositories"
	"map-route-service/internal/api"
	"map-route-service/internal/config"
	"map-route-service/internal/platform/db"
	"map-route-service/internal/platform/logger"
	"map-route-service/internal/ports"
	"map-route-service/internal/services"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (file/SQL/Redis storage, Kafka) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel, "map-route-service")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	var publisher ports.RouteEventPublisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		log.Info("publishing route events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}
	defer func() { _ = publisher.Close() }()

	store := services.NewNotifyingRouteStore(st.routes, publisher, log)

	if cfg.SeedPath != "" {
		if err := seedIfEmpty(ctx, st.routes, cfg.SeedPath, log); err != nil {
			return err
		}
	}

	renderer := overlay.NewGeoJSONRenderer()
	estimator := services.NewEstimator(cfg.WalkingSpeedKmh)
	registry := services.NewSessionRegistry(func() *services.RouteSession {
		return services.NewRouteSession(store, estimator, renderer, log)
	})

	if cfg.SessionIdleTTL > 0 {
		go registry.RunSweeper(ctx, time.Minute, cfg.SessionIdleTTL, func(n int) {
			log.Info("dropped idle sessions", zap.Int("count", n), zap.Duration("ttl", cfg.SessionIdleTTL))
		})
	}

	router := api.NewRouter(api.Deps{
		Registry:    registry,
		Store:       store,
		Renderer:    renderer,
		Preferences: services.NewPreferencesService(st.kv),
		Logger:      log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("route_store", cfg.RouteStore))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// storage bundles the route store and preference medium chosen by ROUTE_STORE.
type storage struct {
	routes  ports.RouteStore
	kv      ports.KeyValueStore
	closers []func() error
}

func (s *storage) close() {
	for _, c := range s.closers {
		_ = c()
	}
}

// openStorage selects the backends. Preferences live in Redis for the redis
// driver and in the JSON data file otherwise.
func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	st := &storage{}

	if cfg.RouteStore == config.StoreRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("open storage: ping redis %s: %w", cfg.RedisAddr, err)
		}
		st.closers = append(st.closers, client.Close)
		st.kv = kv.NewRedisKV(client, "map-route-service", cfg.StorageQuotaBytes)
	} else {
		fileKV, err := kv.NewFileKV(cfg.DataPath, cfg.StorageQuotaBytes)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		st.kv = fileKV
	}

	switch cfg.RouteStore {
	case config.StoreFile, config.StoreRedis:
		st.routes = repositories.NewKVRouteStore(st.kv)
	case config.StoreMemory:
		st.routes = memory.NewRouteStore()
	case config.StoreSqlite:
		conn, err := db.OpenSqlite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, conn.Close)
		if err := initSchema(conn, repositories.InitSchema); err != nil {
			st.close()
			return nil, err
		}
		st.routes = repositories.NewSqliteRouteStore(conn)
	case config.StorePostgres:
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, conn.Close)
		if err := initSchema(conn, repositories.InitPostgresSchema); err != nil {
			st.close()
			return nil, err
		}
		st.routes = repositories.NewSQLRouteStore(conn)
	}

	return st, nil
}

func initSchema(conn *sql.DB, init func(*sql.DB) error) error {
	if err := init(conn); err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	return nil
}

// seedIfEmpty imports an exported savedRoutes file into an empty store so
// restarts do not append the same routes again.
func seedIfEmpty(ctx context.Context, store ports.RouteStore, path string, log *zap.Logger) error {
	existing, err := store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("seed routes: %w", err)
	}
	if len(existing) > 0 {
		log.Debug("route store not empty, skipping seed", zap.Int("routes", len(existing)))
		return nil
	}

	n, err := repositories.ImportFromJSON(ctx, store, path)
	if err != nil {
		return fmt.Errorf("seed routes: %w", err)
	}
	log.Info("imported saved routes", zap.Int("count", n), zap.String("path", path))
	return nil
}
