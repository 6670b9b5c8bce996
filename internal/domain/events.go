package domain

// Имена Redis Streams для пакетного сбора результатов
const (
	// StreamPlacesAcquire - входящие задания на сбор результатов
	StreamPlacesAcquire = "stream:places:acquire"

	// StreamPlacesResults - события с результатами по каждой локации
	StreamPlacesResults = "stream:places:results"
)

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}

// AcquireLocation - одна локация задания: либо свободный текст,
// либо готовые координаты
type AcquireLocation struct {
	Text string   `json:"text,omitempty"`
	Lat  *float64 `json:"lat,omitempty"`
	Lng  *float64 `json:"lng,omitempty"`
}

// AcquireJobEvent - задание на сбор результатов одного запроса
// по множеству локаций
type AcquireJobEvent struct {
	JobID           string            `json:"job_id"`
	Query           string            `json:"query"`
	Locations       []AcquireLocation `json:"locations"`
	RadiusMeters    float64           `json:"radius_meters,omitempty"`
	ContinueOnError bool              `json:"continue_on_error,omitempty"`
}

// AcquireResultEvent - результат поиска по одной локации задания
type AcquireResultEvent struct {
	JobID       string        `json:"job_id"`
	LocationKey string        `json:"location_key"`
	Total       int           `json:"total"`
	Records     []PlaceRecord `json:"records"`
	Error       string        `json:"error,omitempty"`
}
