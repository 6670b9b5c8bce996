package redis

import (
	"context"

	"go.uber.org/zap"

	"github.com/places-microservice/internal/domain"
	"github.com/places-microservice/internal/domain/repository"
)

type streamResultWriter struct {
	streamRepo repository.StreamRepository
	stream     string
	logger     *zap.Logger
}

// NewStreamResultWriter создает ResultWriter, публикующий результаты
// каждой локации отдельным событием в Redis Stream. Сервис результаты
// не хранит - их забирает downstream-потребитель стрима
func NewStreamResultWriter(
	streamRepo repository.StreamRepository,
	stream string,
	logger *zap.Logger,
) repository.ResultWriter {
	return &streamResultWriter{
		streamRepo: streamRepo,
		stream:     stream,
		logger:     logger,
	}
}

// Write публикует записи одной локации событием AcquireResultEvent
func (w *streamResultWriter) Write(ctx context.Context, jobID, key string, records []domain.PlaceRecord) error {
	event := domain.AcquireResultEvent{
		JobID:       jobID,
		LocationKey: key,
		Total:       len(records),
		Records:     records,
	}

	if err := w.streamRepo.PublishToStream(ctx, w.stream, event); err != nil {
		w.logger.Error("Failed to publish acquisition result",
			zap.String("job_id", jobID),
			zap.String("key", key),
			zap.Error(err))
		return err
	}

	w.logger.Debug("Acquisition result published",
		zap.String("job_id", jobID),
		zap.String("key", key),
		zap.Int("records", len(records)))
	return nil
}
