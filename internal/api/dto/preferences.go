package dto

type PreferencesResponse struct {
	Theme              string    `json:"theme"`
	DefaultLayer       string    `json:"default_layer"`
	DefaultZoom        int       `json:"default_zoom"`
	DefaultLocation    []float64 `json:"default_location"`
	GeolocationEnabled bool      `json:"geolocation_enabled"`
}

// PreferencesRequest updates only the fields that are present.
type PreferencesRequest struct {
	Theme              *string   `json:"theme"`
	DefaultLayer       *string   `json:"default_layer"`
	DefaultZoom        *int      `json:"default_zoom"`
	DefaultLocation    []float64 `json:"default_location"`
	GeolocationEnabled *bool     `json:"geolocation_enabled"`
}

type TileLayerResponse struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	URLTemplate string `json:"url_template"`
	Attribution string `json:"attribution"`
}

type MapConfigResponse struct {
	Center       []float64           `json:"center"`
	Zoom         int                 `json:"zoom"`
	Layer        TileLayerResponse   `json:"layer"`
	Layers       []TileLayerResponse `json:"layers"`
	Theme        string              `json:"theme"`
	LocateOnLoad bool                `json:"locate_on_load"`
}
