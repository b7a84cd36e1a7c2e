package overlay

import (
	"fmt"
	"map-route-service/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Polyline style the map front end draws routes with.
const (
	RouteColor  = "#3b82f6"
	RouteWeight = 5
)

// GeoJSONRenderer renders routes as GeoJSON feature collections.
// GeoJSON orders positions as [lng, lat], the reverse of the stored records.
type GeoJSONRenderer struct{}

func NewGeoJSONRenderer() *GeoJSONRenderer { return &GeoJSONRenderer{} }

// RenderPath renders one measured path. An empty path yields an empty collection.
func (GeoJSONRenderer) RenderPath(points []domain.GeoPoint, m domain.Measurement) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	if f := pathFeature(points, m); f != nil {
		fc.Append(f)
	}

	out, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("render path: %w", err)
	}
	return out, nil
}

// RenderRoutes renders saved routes, oldest first, with their save time.
func (GeoJSONRenderer) RenderRoutes(routes []domain.Route) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for i, r := range routes {
		f := pathFeature(r.Points, r.Measurement)
		if f == nil {
			continue
		}
		f.Properties["index"] = i
		f.Properties["timestamp"] = r.Record().Timestamp
		fc.Append(f)
	}

	out, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("render routes: %w", err)
	}
	return out, nil
}

func pathFeature(points []domain.GeoPoint, m domain.Measurement) *geojson.Feature {
	var geom orb.Geometry
	switch len(points) {
	case 0:
		return nil
	case 1:
		geom = toOrb(points[0])
	default:
		ls := make(orb.LineString, 0, len(points))
		for _, p := range points {
			ls = append(ls, toOrb(p))
		}
		geom = ls
	}

	f := geojson.NewFeature(geom)
	f.Properties["distance"] = m.Distance()
	f.Properties["time"] = m.Time()
	f.Properties["distance_km"] = m.DistanceKm
	f.Properties["estimated_time_min"] = m.EstimatedTimeMin
	f.Properties["color"] = RouteColor
	f.Properties["weight"] = RouteWeight
	return f
}

func toOrb(p domain.GeoPoint) orb.Point { return orb.Point{p.Lng, p.Lat} }
