package dto

type SessionResponse struct {
	ID               string      `json:"id"`
	State            string      `json:"state"`
	Saving           bool        `json:"saving"`
	Points           [][]float64 `json:"points"`
	Distance         string      `json:"distance"`
	Time             string      `json:"time"`
	DistanceKm       float64     `json:"distance_km"`
	EstimatedTimeMin int         `json:"estimated_time_min"`
}

// AppendPointsRequest carries either one point or a batch, each as [lat, lng].
type AppendPointsRequest struct {
	Point  []float64   `json:"point"`
	Points [][]float64 `json:"points"`
}

// FinishRequest optionally replaces the drawn path. Omitted or null keeps it.
type FinishRequest struct {
	Points [][]float64 `json:"points"`
}
