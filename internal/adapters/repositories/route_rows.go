package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"map-route-service/internal/domain"
)

// routeRow holds the saved_routes columns shared by the SQL stores.
type routeRow struct {
	coordinates string
	distance    string
	duration    string
	savedAt     string
}

func rowFromRoute(route domain.Route) (routeRow, error) {
	rec := route.Record()
	coords, err := json.Marshal(rec.Coordinates)
	if err != nil {
		return routeRow{}, fmt.Errorf("encode coordinates: %w", err)
	}
	return routeRow{
		coordinates: string(coords),
		distance:    rec.Distance,
		duration:    rec.Time,
		savedAt:     rec.Timestamp,
	}, nil
}

func scanRoutes(rows *sql.Rows) ([]domain.Route, error) {
	routes := make([]domain.Route, 0, 64)
	for rows.Next() {
		var id int64
		var row routeRow
		if err := rows.Scan(&id, &row.coordinates, &row.distance, &row.duration, &row.savedAt); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		rec := domain.RouteRecord{Distance: row.distance, Time: row.duration, Timestamp: row.savedAt}
		if err := json.Unmarshal([]byte(row.coordinates), &rec.Coordinates); err != nil {
			return nil, fmt.Errorf("route id=%d: decode coordinates: %w", id, err)
		}

		route, err := domain.RouteFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("route id=%d: %w", id, err)
		}
		routes = append(routes, route)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	return routes, nil
}
