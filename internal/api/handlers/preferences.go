package handlers

import (
	"map-route-service/internal/api/dto"
	"map-route-service/internal/domain"
	"map-route-service/internal/services"
	"net/http"
)

type PreferencesHandler struct {
	Service *services.PreferencesService
}

func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.Service.Load(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toPreferencesResponse(prefs))
}

// Put applies the fields present in the body on top of the stored preferences.
func (h *PreferencesHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req dto.PreferencesRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	prefs, err := h.Service.Load(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if req.Theme != nil {
		prefs.Theme = *req.Theme
	}
	if req.DefaultLayer != nil {
		prefs.DefaultLayer = *req.DefaultLayer
	}
	if req.DefaultZoom != nil {
		prefs.DefaultZoom = *req.DefaultZoom
	}
	if req.DefaultLocation != nil {
		if len(req.DefaultLocation) != 2 {
			writeError(w, r, http.StatusBadRequest, "default_location must be [lat, lng]")
			return
		}
		prefs.DefaultLocation = domain.GeoPoint{Lat: req.DefaultLocation[0], Lng: req.DefaultLocation[1]}
	}
	if req.GeolocationEnabled != nil {
		prefs.GeolocationEnabled = *req.GeolocationEnabled
	}

	if err := h.Service.Save(r.Context(), prefs); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toPreferencesResponse(prefs))
}

// MapConfig returns the initial map view built from the saved preferences.
func (h *PreferencesHandler) MapConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Service.MapConfig(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	layers := make([]dto.TileLayerResponse, 0, len(cfg.Layers))
	for _, l := range cfg.Layers {
		layers = append(layers, toTileLayerResponse(l))
	}

	writeJSON(w, r, http.StatusOK, dto.MapConfigResponse{
		Center:       cfg.Center.CoordsToList(),
		Zoom:         cfg.Zoom,
		Layer:        toTileLayerResponse(cfg.Layer),
		Layers:       layers,
		Theme:        cfg.Theme,
		LocateOnLoad: cfg.LocateOnLoad,
	})
}

func toPreferencesResponse(p domain.Preferences) dto.PreferencesResponse {
	return dto.PreferencesResponse{
		Theme:              p.Theme,
		DefaultLayer:       p.DefaultLayer,
		DefaultZoom:        p.DefaultZoom,
		DefaultLocation:    p.DefaultLocation.CoordsToList(),
		GeolocationEnabled: p.GeolocationEnabled,
	}
}

func toTileLayerResponse(l domain.TileLayer) dto.TileLayerResponse {
	return dto.TileLayerResponse{
		Name:        l.Name,
		Title:       l.Title,
		URLTemplate: l.URLTemplate,
		Attribution: l.Attribution,
	}
}
