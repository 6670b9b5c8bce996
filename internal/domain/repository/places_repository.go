package repository

import (
	"context"

	"github.com/places-microservice/internal/domain"
)

// PlacesClient определяет операции удалённого Google Maps API,
// от которых зависит сервис: геокодирование и текстовый поиск мест.
// Формат проводных данных и аутентификация - забота реализации
type PlacesClient interface {
	// Geocode преобразует текстовый адрес в список координат-кандидатов
	Geocode(ctx context.Context, address string) ([]domain.Coordinates, error)

	// SearchPlaces выполняет один запрос текстового поиска мест
	// и возвращает страницу результатов с токеном продолжения
	SearchPlaces(ctx context.Context, params domain.PlaceSearchParams) (*domain.ResultPage, error)
}

// ClientResolver превращает ClientSpec в готовый PlacesClient
type ClientResolver interface {
	Resolve(spec ClientSpec) (PlacesClient, error)
}
