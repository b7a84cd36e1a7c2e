package services

import (
	"context"
	"errors"
	"map-route-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferencesLoadDefaults(t *testing.T) {
	svc := NewPreferencesService(newFakeKV())

	prefs, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPreferences(), prefs)
}

func TestPreferencesLoadFallsBackPerKey(t *testing.T) {
	kv := newFakeKV()
	kv.values[KeyTheme] = "dark"
	kv.values[KeyDefaultLayer] = "terrain"
	kv.values[KeyDefaultZoom] = "abc"
	kv.values[KeyDefaultLocation] = `[51.5, -0.12]`
	kv.values[KeyGeolocationEnabled] = "yes"

	prefs, err := NewPreferencesService(kv).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.ThemeDark, prefs.Theme)
	assert.Equal(t, domain.LayerStreet, prefs.DefaultLayer)
	assert.Equal(t, 13, prefs.DefaultZoom)
	assert.Equal(t, domain.GeoPoint{Lat: 51.5, Lng: -0.12}, prefs.DefaultLocation)
	assert.False(t, prefs.GeolocationEnabled)
}

func TestPreferencesLoadIgnoresBadLocation(t *testing.T) {
	kv := newFakeKV()
	kv.values[KeyDefaultLocation] = `[200, 0]`
	kv.values[KeyDefaultZoom] = "0"

	prefs, err := NewPreferencesService(kv).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPreferences().DefaultLocation, prefs.DefaultLocation)
	assert.Equal(t, 13, prefs.DefaultZoom)
}

func TestPreferencesSaveRoundTrip(t *testing.T) {
	kv := newFakeKV()
	svc := NewPreferencesService(kv)

	want := domain.Preferences{
		Theme:              domain.ThemeDark,
		DefaultLayer:       domain.LayerSatellite,
		DefaultZoom:        16,
		DefaultLocation:    domain.GeoPoint{Lat: 48.8566, Lng: 2.3522},
		GeolocationEnabled: true,
	}
	require.NoError(t, svc.Save(context.Background(), want))

	assert.Equal(t, "16", kv.values[KeyDefaultZoom])
	assert.Equal(t, "true", kv.values[KeyGeolocationEnabled])
	assert.Equal(t, "[48.8566,2.3522]", kv.values[KeyDefaultLocation])

	got, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	cfg, err := svc.MapConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Zoom)
	assert.Equal(t, domain.LayerSatellite, cfg.Layer.Name)
	assert.True(t, cfg.LocateOnLoad)
}

func TestPreferencesSaveRejectsInvalid(t *testing.T) {
	kv := newFakeKV()
	prefs := domain.DefaultPreferences()
	prefs.DefaultZoom = 42

	err := NewPreferencesService(kv).Save(context.Background(), prefs)
	require.ErrorIs(t, err, domain.ErrInvalidPreferences)
	assert.Empty(t, kv.values)
}

func TestPreferencesZoomZeroIsRejectedNotLost(t *testing.T) {
	kv := newFakeKV()
	svc := NewPreferencesService(kv)
	ctx := context.Background()

	prefs, err := svc.Load(ctx)
	require.NoError(t, err)
	prefs.DefaultZoom = 0

	err = svc.Save(ctx, prefs)
	require.ErrorIs(t, err, domain.ErrInvalidPreferences)
	assert.NotContains(t, kv.values, KeyDefaultZoom)

	prefs.DefaultZoom = domain.MinZoom
	require.NoError(t, svc.Save(ctx, prefs))

	got, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.MinZoom, got.DefaultZoom)
}

func TestPreferencesLoadPropagatesStoreError(t *testing.T) {
	kv := newFakeKV()
	kv.err = errors.New("unavailable")

	_, err := NewPreferencesService(kv).Load(context.Background())
	require.Error(t, err)
}
