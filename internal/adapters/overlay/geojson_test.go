package overlay

import (
	"map-route-service/internal/domain"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPathLineString(t *testing.T) {
	points := []domain.GeoPoint{{Lat: 37.7749, Lng: -122.4194}, {Lat: 37.78, Lng: -122.41}}
	m := domain.Measurement{DistanceKm: 0.93, EstimatedTimeMin: 11}

	doc, err := NewGeoJSONRenderer().RenderPath(points, m)
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection(doc)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)

	f := fc.Features[0]
	ls, ok := f.Geometry.(orb.LineString)
	require.True(t, ok, "geometry is %T", f.Geometry)
	assert.Equal(t, orb.Point{-122.4194, 37.7749}, ls[0])

	assert.Equal(t, "0.93 km", f.Properties.MustString("distance"))
	assert.Equal(t, "11 min", f.Properties.MustString("time"))
	assert.Equal(t, RouteColor, f.Properties.MustString("color"))
	assert.Equal(t, RouteWeight, f.Properties.MustInt("weight"))
}

func TestRenderPathShortPaths(t *testing.T) {
	r := NewGeoJSONRenderer()

	doc, err := r.RenderPath(nil, domain.Measurement{})
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(doc)
	require.NoError(t, err)
	assert.Empty(t, fc.Features)

	doc, err = r.RenderPath([]domain.GeoPoint{{Lat: 1, Lng: 2}}, domain.Measurement{})
	require.NoError(t, err)
	fc, err = geojson.UnmarshalFeatureCollection(doc)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, orb.Point{2, 1}, fc.Features[0].Geometry)
}

func TestRenderRoutes(t *testing.T) {
	routes := []domain.Route{
		{
			Points:    []domain.GeoPoint{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}},
			CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		},
		{CreatedAt: time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)},
	}

	doc, err := NewGeoJSONRenderer().RenderRoutes(routes)
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection(doc)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "2024-05-01T12:00:00.000Z", fc.Features[0].Properties.MustString("timestamp"))
}
