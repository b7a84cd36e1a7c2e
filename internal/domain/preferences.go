package domain

import "fmt"

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	LayerStreet    = "street"
	LayerSatellite = "satellite"

	MinZoom = 1
	MaxZoom = 19
)

// Display preferences persisted for the map view.
type Preferences struct {
	Theme              string
	DefaultLayer       string
	DefaultZoom        int
	DefaultLocation    GeoPoint
	GeolocationEnabled bool
}

// DefaultPreferences centers on San Francisco with the street layer at zoom 13.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:              ThemeLight,
		DefaultLayer:       LayerStreet,
		DefaultZoom:        13,
		DefaultLocation:    GeoPoint{Lat: 37.7749, Lng: -122.4194},
		GeolocationEnabled: false,
	}
}

func (p Preferences) Validate() error {
	if p.Theme != ThemeLight && p.Theme != ThemeDark {
		return fmt.Errorf("%w: theme must be %q or %q, got %q", ErrInvalidPreferences, ThemeLight, ThemeDark, p.Theme)
	}
	if _, ok := TileLayers[p.DefaultLayer]; !ok {
		return fmt.Errorf("%w: unknown layer %q", ErrInvalidPreferences, p.DefaultLayer)
	}
	if p.DefaultZoom < MinZoom || p.DefaultZoom > MaxZoom {
		return fmt.Errorf("%w: zoom must be between %d and %d, got %d", ErrInvalidPreferences, MinZoom, MaxZoom, p.DefaultZoom)
	}
	if err := p.DefaultLocation.Validate(); err != nil {
		return fmt.Errorf("%w: default location: %w", ErrInvalidPreferences, err)
	}
	return nil
}

// TileLayer describes a base layer the map front end can build.
type TileLayer struct {
	Name        string
	Title       string
	URLTemplate string
	Attribution string
}

var TileLayers = map[string]TileLayer{
	LayerStreet: {
		Name:        LayerStreet,
		Title:       "Street Map",
		URLTemplate: "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
	},
	LayerSatellite: {
		Name:        LayerSatellite,
		Title:       "Satellite View",
		URLTemplate: "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}",
		Attribution: "Tiles &copy; Esri &mdash; Source: Esri, i-cubed, USDA, USGS, AEX, GeoEye, Getmapping, Aerogrid, IGN, IGP, UPR-EGP, and the GIS User Community",
	},
}

// MapConfig is the initial view the map front end builds from saved preferences.
type MapConfig struct {
	Center       GeoPoint
	Zoom         int
	Layer        TileLayer
	Layers       []TileLayer
	Theme        string
	LocateOnLoad bool
}

// NewMapConfig derives the initial view. Unknown layers fall back to the street layer.
func NewMapConfig(p Preferences) MapConfig {
	layer, ok := TileLayers[p.DefaultLayer]
	if !ok {
		layer = TileLayers[LayerStreet]
	}
	return MapConfig{
		Center:       p.DefaultLocation,
		Zoom:         p.DefaultZoom,
		Layer:        layer,
		Layers:       []TileLayer{TileLayers[LayerStreet], TileLayers[LayerSatellite]},
		Theme:        p.Theme,
		LocateOnLoad: p.GeolocationEnabled,
	}
}
