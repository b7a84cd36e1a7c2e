package services

import (
	"context"
	"encoding/json"
	"fmt"
	"map-route-service/internal/domain"
	"map-route-service/internal/platform/obs"
	"map-route-service/internal/ports"
	"strconv"
	"strings"
)

// Well-known keys the map front end has always used for its settings.
const (
	KeyTheme              = "mapTheme"
	KeyDefaultLayer       = "mapDefaultLayer"
	KeyDefaultZoom        = "mapDefaultZoom"
	KeyDefaultLocation    = "mapDefaultLocation"
	KeyGeolocationEnabled = "geolocationEnabled"
)

// PreferencesService loads and saves display preferences in a key-value medium.
type PreferencesService struct {
	KV ports.KeyValueStore
}

func NewPreferencesService(kv ports.KeyValueStore) *PreferencesService {
	return &PreferencesService{KV: kv}
}

// Load reads every preference key. Missing or unparseable values fall back
// to the defaults individually.
func (s *PreferencesService) Load(ctx context.Context) (_ domain.Preferences, err error) {
	defer obs.Time(ctx, "preferences.Load")(&err)

	prefs := domain.DefaultPreferences()

	theme, ok, err := s.KV.Get(ctx, KeyTheme)
	if err != nil {
		return prefs, fmt.Errorf("load preferences: %s: %w", KeyTheme, err)
	}
	if ok && theme == domain.ThemeDark {
		prefs.Theme = domain.ThemeDark
	}

	layer, ok, err := s.KV.Get(ctx, KeyDefaultLayer)
	if err != nil {
		return prefs, fmt.Errorf("load preferences: %s: %w", KeyDefaultLayer, err)
	}
	if _, known := domain.TileLayers[layer]; ok && known {
		prefs.DefaultLayer = layer
	}

	zoom, ok, err := s.KV.Get(ctx, KeyDefaultZoom)
	if err != nil {
		return prefs, fmt.Errorf("load preferences: %s: %w", KeyDefaultZoom, err)
	}
	if ok {
		// Zero is below MinZoom and counts as unset, like the front end's parseInt(...) || 13.
		if z, convErr := strconv.Atoi(strings.TrimSpace(zoom)); convErr == nil && z >= domain.MinZoom && z <= domain.MaxZoom {
			prefs.DefaultZoom = z
		}
	}

	loc, ok, err := s.KV.Get(ctx, KeyDefaultLocation)
	if err != nil {
		return prefs, fmt.Errorf("load preferences: %s: %w", KeyDefaultLocation, err)
	}
	if ok {
		var pair []float64
		if json.Unmarshal([]byte(loc), &pair) == nil {
			if p, pErr := domain.GeoPointFromList(pair); pErr == nil {
				prefs.DefaultLocation = p
			}
		}
	}

	geo, ok, err := s.KV.Get(ctx, KeyGeolocationEnabled)
	if err != nil {
		return prefs, fmt.Errorf("load preferences: %s: %w", KeyGeolocationEnabled, err)
	}
	prefs.GeolocationEnabled = ok && geo == "true"

	return prefs, nil
}

// Save validates and writes every preference key.
func (s *PreferencesService) Save(ctx context.Context, prefs domain.Preferences) (err error) {
	defer obs.Time(ctx, "preferences.Save")(&err)

	if err := prefs.Validate(); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}

	loc, err := json.Marshal(prefs.DefaultLocation.CoordsToList())
	if err != nil {
		return fmt.Errorf("save preferences: encode location: %w", err)
	}

	values := []struct{ key, value string }{
		{KeyTheme, prefs.Theme},
		{KeyDefaultLayer, prefs.DefaultLayer},
		{KeyDefaultZoom, strconv.Itoa(prefs.DefaultZoom)},
		{KeyDefaultLocation, string(loc)},
		{KeyGeolocationEnabled, strconv.FormatBool(prefs.GeolocationEnabled)},
	}

	for _, v := range values {
		if err := s.KV.Set(ctx, v.key, v.value); err != nil {
			return fmt.Errorf("save preferences: %s: %w", v.key, err)
		}
	}

	return nil
}

// MapConfig returns the initial map view for the saved preferences.
func (s *PreferencesService) MapConfig(ctx context.Context) (domain.MapConfig, error) {
	prefs, err := s.Load(ctx)
	if err != nil {
		return domain.MapConfig{}, fmt.Errorf("map config: %w", err)
	}
	return domain.NewMapConfig(prefs), nil
}
