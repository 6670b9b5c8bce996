package memory

import (
	"context"
	"sync"

	"github.com/places-microservice/internal/domain"
	"github.com/places-microservice/internal/domain/repository"
)

// ResultWriter - потокобезопасный ResultWriter в памяти процесса.
// Удобен библиотечным вызовам AcquireUseCase и тестам; ничего не
// переживает перезапуск процесса
type ResultWriter struct {
	mu      sync.RWMutex
	results map[string][]domain.PlaceRecord
}

// NewResultWriter создает новый ResultWriter в памяти
func NewResultWriter() *ResultWriter {
	return &ResultWriter{
		results: make(map[string][]domain.PlaceRecord),
	}
}

var _ repository.ResultWriter = (*ResultWriter)(nil)

// Write сохраняет записи локации под ключом jobID/key
func (w *ResultWriter) Write(_ context.Context, jobID, key string, records []domain.PlaceRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.results[jobID+"/"+key] = records
	return nil
}

// Get возвращает записи, сохранённые под ключом jobID/key
func (w *ResultWriter) Get(jobID, key string) ([]domain.PlaceRecord, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	records, ok := w.results[jobID+"/"+key]
	return records, ok
}

// Len возвращает количество сохранённых локаций
func (w *ResultWriter) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.results)
}
