package services

import (
	"map-route-service/internal/domain"
	"math"
)

const (
	// EarthRadiusMeters matches the spherical model used by the map front end.
	EarthRadiusMeters = 6371000.0

	DefaultWalkingSpeedKmh = 5.0
)

// Estimator measures drawn paths and converts distance to a walking time.
type Estimator struct {
	WalkingSpeedKmh float64
}

// NewEstimator returns an estimator for the given walking speed.
// Non-positive speeds fall back to DefaultWalkingSpeedKmh.
func NewEstimator(walkingSpeedKmh float64) *Estimator {
	if walkingSpeedKmh <= 0 || math.IsNaN(walkingSpeedKmh) || math.IsInf(walkingSpeedKmh, 0) {
		walkingSpeedKmh = DefaultWalkingSpeedKmh
	}
	return &Estimator{WalkingSpeedKmh: walkingSpeedKmh}
}

// Estimate sums the great-circle length of consecutive segments.
//
// Meters are accumulated unrounded, then converted to kilometers rounded to
// two decimals. The time is derived from the rounded kilometers so the two
// displayed values always agree. Paths with fewer than two points measure zero.
func (e *Estimator) Estimate(points []domain.GeoPoint) domain.Measurement {
	if len(points) < 2 {
		return domain.Measurement{}
	}

	totalMeters := 0.0
	for i := 0; i < len(points)-1; i++ {
		totalMeters += HaversineMeters(points[i], points[i+1])
	}

	distanceKm := math.Round(totalMeters/1000*100) / 100

	speed := e.WalkingSpeedKmh
	if speed <= 0 {
		speed = DefaultWalkingSpeedKmh
	}

	return domain.Measurement{
		DistanceKm:       distanceKm,
		EstimatedTimeMin: int(math.Round(distanceKm / speed * 60)),
	}
}

// HaversineMeters returns the surface distance between two points on a sphere.
func HaversineMeters(a, b domain.GeoPoint) float64 {
	const rad = math.Pi / 180

	lat1 := a.Lat * rad
	lat2 := b.Lat * rad
	dLat := (b.Lat - a.Lat) * rad
	dLng := (b.Lng - a.Lng) * rad

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng

	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
