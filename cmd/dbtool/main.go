package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"map-route-service/internal/adapters/repositories"
	"map-route-service/internal/config"
	"map-route-service/internal/platform/db"
	"map-route-service/internal/platform/logger"
	"map-route-service/internal/ports"
	"os"
	"strings"

	"go.uber.org/zap"
)

// dbtool prepares a SQL route store and optionally imports an exported
// savedRoutes JSON array into it.
func main() {
	config.LoadDotEnv()

	driver := flag.String("driver", defaultDriver(), "sqlite or postgres")
	seedPath := flag.String("seed", config.Get("SEED_PATH", ""), "savedRoutes JSON export to import")
	flag.Parse()

	log, err := logger.New(config.Get("APP_ENV", "development"), config.Get("LOG_LEVEL", ""), "dbtool")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	conn, store, err := open(*driver, log)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	log.Info("schema ready", zap.String("driver", *driver))

	if *seedPath == "" {
		return
	}

	log.Info("importing routes", zap.String("path", *seedPath))
	n, err := repositories.ImportFromJSON(context.Background(), store, *seedPath)
	if err != nil {
		log.Fatal("import failed", zap.Int("imported", n), zap.Error(err))
	}
	log.Info("import complete", zap.Int("imported", n))
}

// defaultDriver prefers DBTOOL_DRIVER, then ROUTE_STORE when it names a SQL
// store, then postgres. A shared .env with ROUTE_STORE=file still works.
func defaultDriver() string {
	if d := config.Get("DBTOOL_DRIVER", ""); d != "" {
		return strings.ToLower(d)
	}
	switch d := strings.ToLower(config.Get("ROUTE_STORE", "")); d {
	case config.StoreSqlite, config.StorePostgres:
		return d
	}
	return config.StorePostgres
}

func open(driver string, log *zap.Logger) (*sql.DB, ports.RouteStore, error) {
	switch driver {
	case config.StoreSqlite:
		dbPath := config.Get("DB_PATH", "data/app.db")
		conn, err := db.OpenSqlite(dbPath)
		if err != nil {
			return nil, nil, err
		}
		log.Info("initializing sqlite schema", zap.String("path", dbPath))
		if err := repositories.InitSchema(conn); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		return conn, repositories.NewSqliteRouteStore(conn), nil

	case config.StorePostgres:
		databaseURL := config.Get("DATABASE_URL", "")
		if databaseURL == "" {
			return nil, nil, fmt.Errorf("DATABASE_URL is required")
		}
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info("initializing postgres schema")
		if err := repositories.InitPostgresSchema(conn); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		return conn, repositories.NewSQLRouteStore(conn), nil

	default:
		return nil, nil, fmt.Errorf("unsupported driver %q (want sqlite or postgres)", driver)
	}
}
