package dto

type RouteResponse struct {
	Coordinates [][]float64 `json:"coordinates"`
	Distance    string      `json:"distance"`
	Time        string      `json:"time"`
	Timestamp   string      `json:"timestamp"`
}

type ListRoutesResponse struct {
	Routes []RouteResponse `json:"routes"`
}
