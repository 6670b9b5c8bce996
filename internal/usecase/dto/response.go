package dto

import "github.com/places-microservice/internal/domain"

// SearchResponse - ответ на поиск мест: плоский упорядоченный список
// записей в том порядке, в котором их вернул Google
type SearchResponse struct {
	Records []domain.PlaceRecord `json:"records"`
	Total   int                  `json:"total"`
	Pages   int                  `json:"pages"`
}

// GeocodeResponse - ответ на геокодирование
type GeocodeResponse struct {
	Location   domain.Coordinates   `json:"location"`
	Candidates []domain.Coordinates `json:"candidates"`
	Total      int                  `json:"total"`
}

// DistanceResponse - ответ на вычисление расстояния
type DistanceResponse struct {
	DistanceMeters float64 `json:"distance_meters"`
}

// MapsURLResponse - ответ со ссылкой на Google Maps
type MapsURLResponse struct {
	URL string `json:"url"`
}

// AcquireAcceptedResponse - подтверждение принятия задания в очередь
type AcquireAcceptedResponse struct {
	JobID     string `json:"job_id"`
	Locations int    `json:"locations"`
}

// AcquireLocationResult - сводка по одной локации задания
type AcquireLocationResult struct {
	Key   string `json:"key"`
	Total int    `json:"total"`
	Error string `json:"error,omitempty"`
}

// AcquireRunResponse - сводка выполнения задания: записи сюда не входят,
// они ушли в ResultWriter
type AcquireRunResponse struct {
	Results []AcquireLocationResult `json:"results"`
	Failed  int                     `json:"failed"`
}
