package acquisition

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/places-microservice/internal/domain"
	"github.com/places-microservice/internal/domain/repository"
	"github.com/places-microservice/internal/usecase"
	"github.com/places-microservice/internal/worker"
)

const (
	maxBatchSize    = 5                      // заданий за одно чтение стрима
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
)

// Worker обрабатывает задания пакетного сбора результатов поиска.
// Каждое сообщение стрима - одно задание: запрос плюс список локаций.
// Результаты по локациям уходят в ResultWriter, сводка выполнения
// публикуется обратно в стрим результатов
type Worker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	acquireUC    *usecase.AcquireUseCase
	consumerName string
	maxRetries   int
}

// NewWorker создает новый воркер пакетного сбора
func NewWorker(
	streamRepo repository.StreamRepository,
	acquireUC *usecase.AcquireUseCase,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *Worker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &Worker{
		BaseWorker:   worker.NewBaseWorker("places-acquisition", consumerGroup, logger),
		streamRepo:   streamRepo,
		acquireUC:    acquireUC,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

// Start запускает основной цикл воркера
func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting acquisition worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamPlacesAcquire, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second) // пауза при ошибке
				continue
			}

			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch читает и обрабатывает пачку заданий.
// Возвращает количество обработанных сообщений
func (w *Worker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamPlacesAcquire,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil // очередь пуста
	}

	logger.Info("Processing acquisition jobs",
		zap.Int("message_count", len(messages)))

	processed := 0
	for _, msg := range messages {
		job, err := w.parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// ACK битое сообщение чтобы не застревало в стриме
			_ = w.streamRepo.AckMessage(ctx, domain.StreamPlacesAcquire, w.ConsumerGroup(), msg.ID)
			processed++
			continue
		}

		if err := w.processJob(ctx, job); err != nil {
			logger.Error("Acquisition job failed",
				zap.String("job_id", job.JobID),
				zap.Error(err))
			// Задание останется pending и будет перечитано позже
			continue
		}

		if err := w.streamRepo.AckMessage(ctx, domain.StreamPlacesAcquire, w.ConsumerGroup(), msg.ID); err != nil {
			logger.Error("Failed to ack message",
				zap.String("message_id", msg.ID),
				zap.Error(err))
		}
		processed++
	}

	return processed, nil
}

// processJob выполняет одно задание. Сбои отдельных локаций внутри
// задания (ContinueOnError) не считаются сбоем задания
func (w *Worker) processJob(ctx context.Context, job *domain.AcquireJobEvent) error {
	logger := w.Logger()

	summary, err := w.acquireUC.Acquire(ctx, *job)
	if err != nil {
		return fmt.Errorf("acquisition failed: %w", err)
	}

	logger.Info("Acquisition job processed",
		zap.String("job_id", job.JobID),
		zap.Int("locations", len(summary.Results)),
		zap.Int("failed", summary.Failed))

	return nil
}

// parseMessage разбирает JSON задания из сообщения стрима
func (w *Worker) parseMessage(msg domain.StreamMessage) (*domain.AcquireJobEvent, error) {
	var job domain.AcquireJobEvent
	if err := json.Unmarshal([]byte(msg.Data), &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	if job.JobID == "" {
		return nil, fmt.Errorf("job is missing job_id")
	}
	return &job, nil
}
