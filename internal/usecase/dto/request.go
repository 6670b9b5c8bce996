package dto

import (
	"github.com/places-microservice/internal/domain/repository"
)

// SearchRequest - запрос на поиск мест.
// Локация задаётся либо свободным текстом (location), либо парой
// координат (lat/lng); координаты имеют приоритет.
// ClientSpec доступен только программным вызовам: HTTP-слой всегда
// оставляет нулевое значение (ключ из окружения по умолчанию)
type SearchRequest struct {
	Query        string   `json:"query" validate:"required,min=1"`
	Location     string   `json:"location,omitempty"`
	Lat          *float64 `json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	Lng          *float64 `json:"lng,omitempty" validate:"omitempty,min=-180,max=180"`
	RadiusMeters float64  `json:"radius_meters,omitempty" validate:"omitempty,gt=0"`
	MaxResults   int      `json:"max_results,omitempty" validate:"omitempty,min=1"`

	ClientSpec repository.ClientSpec `json:"-"`
}

// GeocodeRequest - запрос на геокодирование текстового адреса
type GeocodeRequest struct {
	Query string `json:"query" validate:"required,min=1"`

	ClientSpec repository.ClientSpec `json:"-"`
}

// Point - координаты точки
type Point struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

// DistanceRequest - запрос на вычисление расстояния между двумя точками
type DistanceRequest struct {
	From Point `json:"from" validate:"required"`
	To   Point `json:"to" validate:"required"`
}

// AcquireLocationInput - одна локация задания на пакетный сбор
type AcquireLocationInput struct {
	Text string   `json:"text,omitempty"`
	Lat  *float64 `json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	Lng  *float64 `json:"lng,omitempty" validate:"omitempty,min=-180,max=180"`
}

// AcquireRequest - запрос на пакетный сбор результатов одного запроса
// по множеству локаций
type AcquireRequest struct {
	Query           string                 `json:"query" validate:"required,min=1"`
	Locations       []AcquireLocationInput `json:"locations" validate:"required,min=1,max=500,dive"`
	RadiusMeters    float64                `json:"radius_meters,omitempty" validate:"omitempty,gt=0"`
	ContinueOnError bool                   `json:"continue_on_error,omitempty"`
}
