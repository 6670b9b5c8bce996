package googleplaces

import "github.com/places-microservice/internal/domain"

// Статусы ответов Google Maps API
const (
	statusOK             = "OK"
	statusZeroResults    = "ZERO_RESULTS"
	statusInvalidRequest = "INVALID_REQUEST"
)

// geocodeResponse - конверт ответа Geocoding API
type geocodeResponse struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Results      []geocodeResult `json:"results"`
}

type geocodeResult struct {
	FormattedAddress string          `json:"formatted_address,omitempty"`
	Geometry         geocodeGeometry `json:"geometry"`
}

type geocodeGeometry struct {
	Location domain.Coordinates `json:"location"`
}

// textSearchResponse - конверт ответа Places Text Search API.
// Сами записи (results) не типизируются - передаются как есть
type textSearchResponse struct {
	Status        string               `json:"status"`
	ErrorMessage  string               `json:"error_message,omitempty"`
	NextPageToken string               `json:"next_page_token,omitempty"`
	Results       []domain.PlaceRecord `json:"results"`
}
