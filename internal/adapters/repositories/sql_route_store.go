package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"map-route-service/internal/domain"
	"map-route-service/internal/platform/obs"
)

// SQLRouteStore is the Postgres implementation of the RouteStore port.
type SQLRouteStore struct{ DB *sql.DB }

func NewSQLRouteStore(db *sql.DB) *SQLRouteStore {
	return &SQLRouteStore{DB: db}
}

func (s *SQLRouteStore) Save(ctx context.Context, route domain.Route) (err error) {
	defer obs.Time(ctx, "routes.sql.Save")(&err)

	if s.DB == nil {
		return errors.New("sql route store: DB is nil")
	}

	row, err := rowFromRoute(route)
	if err != nil {
		return fmt.Errorf("save route: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save route: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
	INSERT INTO saved_routes (
		coordinates,
		distance,
		duration,
		saved_at
	)
	VALUES ($1::jsonb, $2, $3, $4);
	`, row.coordinates, row.distance, row.duration, row.savedAt); err != nil {
		return fmt.Errorf("save route: insert saved_routes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save route: commit: %w", err)
	}

	return nil
}

func (s *SQLRouteStore) ListAll(ctx context.Context) (_ []domain.Route, err error) {
	defer obs.Time(ctx, "routes.sql.ListAll")(&err)

	if s.DB == nil {
		return nil, errors.New("sql route store: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		id,
		coordinates::text,
		distance,
		duration,
		saved_at
	FROM saved_routes
	ORDER BY id;
	`)
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
