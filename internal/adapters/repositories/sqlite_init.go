package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"map-route-service/internal/domain"
	"map-route-service/internal/ports"
	"os"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	return initSchema(db, []string{`
	CREATE TABLE IF NOT EXISTS saved_routes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		coordinates TEXT NOT NULL,
		distance TEXT NOT NULL,
		duration TEXT NOT NULL,
		saved_at TEXT NOT NULL
	);
	`})
}

// Initialize the Postgres database schema.
func InitPostgresSchema(db *sql.DB) error {
	return initSchema(db, []string{`
	CREATE TABLE IF NOT EXISTS saved_routes (
		id BIGSERIAL PRIMARY KEY,
		coordinates JSONB NOT NULL,
		distance TEXT NOT NULL,
		duration TEXT NOT NULL,
		saved_at TEXT NOT NULL
	);
	`})
}

func initSchema(db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// ImportFromJSON appends every route of an exported savedRoutes array to the
// store, in file order. The whole file is validated before anything is written.
func ImportFromJSON(ctx context.Context, store ports.RouteStore, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("import routes: read %q: %w", jsonPath, err)
	}

	var records []domain.RouteRecord
	if err := json.Unmarshal(bytes, &records); err != nil {
		return 0, fmt.Errorf("import routes: parse json: %w", err)
	}

	routes := make([]domain.Route, 0, len(records))
	for i, rec := range records {
		r, err := domain.RouteFromRecord(rec)
		if err != nil {
			return 0, fmt.Errorf("import routes: item at index %d: %w", i+1, err)
		}
		routes = append(routes, r)
	}

	for i, r := range routes {
		if err := store.Save(ctx, r); err != nil {
			return i, fmt.Errorf("import routes: save item at index %d: %w", i+1, err)
		}
	}

	return len(routes), nil
}
