package domain

import (
	"fmt"
	"math"
)

// GeoPoint is an immutable geographic coordinate (latitude, longitude) in degrees.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// Validate reports whether the point lies within latitude [-90, 90] and longitude [-180, 180].
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v must be between -90 and 90", ErrInvalidCoordinates, p.Lat)
	}
	if math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) || p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrInvalidCoordinates, p.Lng)
	}
	return nil
}

// Return the point as [lat, lng], the order used by the persisted route records.
func (p GeoPoint) CoordsToList() []float64 { return []float64{p.Lat, p.Lng} }

// GeoPointFromList builds a point from a [lat, lng] pair.
func GeoPointFromList(pair []float64) (GeoPoint, error) {
	if len(pair) != 2 {
		return GeoPoint{}, fmt.Errorf("%w: expected [lat, lng], got %d values", ErrInvalidCoordinates, len(pair))
	}
	p := GeoPoint{Lat: pair[0], Lng: pair[1]}
	if err := p.Validate(); err != nil {
		return GeoPoint{}, err
	}
	return p, nil
}

// ValidatePath checks every point of an ordered path and reports the first bad index.
func ValidatePath(points []GeoPoint) error {
	for i, p := range points {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: point %d: %w", ErrInvalidRoute, i, err)
		}
	}
	return nil
}
