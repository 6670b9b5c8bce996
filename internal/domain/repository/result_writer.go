package repository

import (
	"context"

	"github.com/places-microservice/internal/domain"
)

// ResultWriter - приёмник результатов пакетного сбора. Сервис сам ничего
// не хранит: куда уходят записи (стрим, память вызывающей стороны),
// решает переданная реализация
type ResultWriter interface {
	// Write передаёт записи, собранные по одной локации задания
	Write(ctx context.Context, jobID, key string, records []domain.PlaceRecord) error
}
