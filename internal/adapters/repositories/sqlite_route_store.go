package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"map-route-service/internal/domain"
	"map-route-service/internal/platform/obs"
)

// SQLite-backed implementation of the RouteStore port.
type SqliteRouteStore struct{ DB *sql.DB }

func NewSqliteRouteStore(db *sql.DB) *SqliteRouteStore {
	return &SqliteRouteStore{DB: db}
}

// Append one route row.
func (s *SqliteRouteStore) Save(ctx context.Context, route domain.Route) (err error) {
	defer obs.Time(ctx, "routes.sqlite.Save")(&err)

	if s.DB == nil {
		return errors.New("sqlite route store: DB is nil")
	}

	row, err := rowFromRoute(route)
	if err != nil {
		return fmt.Errorf("save route: %w", err)
	}

	query := `
	INSERT INTO saved_routes (
		coordinates,
		distance,
		duration,
		saved_at
	)
	VALUES (?, ?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, query, row.coordinates, row.distance, row.duration, row.savedAt); err != nil {
		return fmt.Errorf("save route: insert saved_routes: %w", err)
	}

	return nil
}

// Return all saved routes in insertion order.
func (s *SqliteRouteStore) ListAll(ctx context.Context) (_ []domain.Route, err error) {
	defer obs.Time(ctx, "routes.sqlite.ListAll")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite route store: DB is nil")
	}

	query := `
	SELECT
		id,
		coordinates,
		distance,
		duration,
		saved_at
	FROM saved_routes
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list routes: query saved_routes table: %w", err)
	}
	defer rows.Close()

	routes, err := scanRoutes(rows)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	return routes, nil
}
