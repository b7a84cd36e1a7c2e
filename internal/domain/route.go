package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the ISO-8601 form written into route records (UTC, millisecond precision).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Measurement is the derived distance and walking-time estimate of a path.
type Measurement struct {
	DistanceKm       float64
	EstimatedTimeMin int
}

// Distance formats the distance for display, e.g. "2.35 km".
func (m Measurement) Distance() string {
	return strconv.FormatFloat(m.DistanceKm, 'f', 2, 64) + " km"
}

// Time formats the estimate for display, e.g. "28 min".
func (m Measurement) Time() string {
	return strconv.Itoa(m.EstimatedTimeMin) + " min"
}

// Represents a saved, measured path.
// Points are in drawing order. CreatedAt is assigned when the route is saved
// and is not changed afterwards.
type Route struct {
	Points []GeoPoint
	Measurement
	CreatedAt time.Time
}

// RouteRecord is the persisted shape of one saved route.
type RouteRecord struct {
	Coordinates [][]float64 `json:"coordinates"`
	Distance    string      `json:"distance"`
	Time        string      `json:"time"`
	Timestamp   string      `json:"timestamp"`
}

// Record converts the route into its persisted shape.
func (r Route) Record() RouteRecord {
	coords := make([][]float64, 0, len(r.Points))
	for _, p := range r.Points {
		coords = append(coords, p.CoordsToList())
	}
	return RouteRecord{
		Coordinates: coords,
		Distance:    r.Distance(),
		Time:        r.Time(),
		Timestamp:   r.CreatedAt.UTC().Format(TimestampLayout),
	}
}

// RouteFromRecord parses a persisted record back into a Route.
// Distances written without decimals (e.g. "0 km") are accepted.
func RouteFromRecord(rec RouteRecord) (Route, error) {
	points := make([]GeoPoint, 0, len(rec.Coordinates))
	for i, pair := range rec.Coordinates {
		p, err := GeoPointFromList(pair)
		if err != nil {
			return Route{}, fmt.Errorf("route record: coordinate %d: %w", i, err)
		}
		points = append(points, p)
	}

	km, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rec.Distance), "km")), 64)
	if err != nil {
		return Route{}, fmt.Errorf("route record: parse distance %q: %w", rec.Distance, err)
	}

	mins, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rec.Time), "min")))
	if err != nil {
		return Route{}, fmt.Errorf("route record: parse time %q: %w", rec.Time, err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, rec.Timestamp)
	if err != nil {
		return Route{}, fmt.Errorf("route record: parse timestamp %q: %w", rec.Timestamp, err)
	}

	return Route{
		Points:      points,
		Measurement: Measurement{DistanceKm: km, EstimatedTimeMin: mins},
		CreatedAt:   createdAt.UTC(),
	}, nil
}
