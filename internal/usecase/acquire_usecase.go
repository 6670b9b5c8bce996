package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/places-microservice/internal/domain"
	"github.com/places-microservice/internal/domain/repository"
	apperrors "github.com/places-microservice/internal/pkg/errors"
	"github.com/places-microservice/internal/pkg/utils"
	"github.com/places-microservice/internal/usecase/dto"
)

// AcquireUseCase - пакетный сбор результатов одного запроса по множеству
// локаций. Записи не возвращаются вызывающей стороне: каждая локация
// уходит в ResultWriter, а наружу отдаётся только сводка по локациям
type AcquireUseCase struct {
	searchUC *SearchUseCase
	writer   repository.ResultWriter
	logger   *zap.Logger
}

// NewAcquireUseCase - создание нового AcquireUseCase
func NewAcquireUseCase(
	searchUC *SearchUseCase,
	writer repository.ResultWriter,
	logger *zap.Logger,
) *AcquireUseCase {
	return &AcquireUseCase{
		searchUC: searchUC,
		writer:   writer,
		logger:   logger,
	}
}

// Acquire выполняет поиск job.Query для каждой локации задания по очереди.
// При ContinueOnError сбой одной локации фиксируется в сводке, и обработка
// продолжается; иначе первый сбой роняет всё задание
func (uc *AcquireUseCase) Acquire(ctx context.Context, job domain.AcquireJobEvent) (*dto.AcquireRunResponse, error) {
	if job.Query == "" {
		return nil, apperrors.ErrInvalidQuery
	}
	if len(job.Locations) == 0 {
		return nil, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": "at least one location is required",
		})
	}

	uc.logger.Info("Acquisition started",
		zap.String("job_id", job.JobID),
		zap.String("query", job.Query),
		zap.Int("locations", len(job.Locations)))

	results := make([]dto.AcquireLocationResult, 0, len(job.Locations))
	failed := 0

	for i, loc := range job.Locations {
		key := locationKey(i, loc)

		resp, err := uc.searchUC.Search(ctx, dto.SearchRequest{
			Query:        job.Query,
			Location:     loc.Text,
			Lat:          loc.Lat,
			Lng:          loc.Lng,
			RadiusMeters: job.RadiusMeters,
		})
		if err == nil {
			err = uc.writer.Write(ctx, job.JobID, key, resp.Records)
		}

		if err != nil {
			if !job.ContinueOnError {
				return nil, err
			}
			failed++
			uc.logger.Warn("Acquisition location failed",
				zap.String("job_id", job.JobID),
				zap.String("key", key),
				zap.Error(err))
			results = append(results, dto.AcquireLocationResult{
				Key:   key,
				Error: err.Error(),
			})
			continue
		}

		results = append(results, dto.AcquireLocationResult{
			Key:   key,
			Total: resp.Total,
		})
	}

	uc.logger.Info("Acquisition completed",
		zap.String("job_id", job.JobID),
		zap.Int("locations", len(job.Locations)),
		zap.Int("failed", failed))

	return &dto.AcquireRunResponse{
		Results: results,
		Failed:  failed,
	}, nil
}

// locationKey - ключ локации для ResultWriter: текст локации или
// координаты; индекс делает ключ уникальным внутри задания
func locationKey(index int, loc domain.AcquireLocation) string {
	name := loc.Text
	if name == "" && loc.Lat != nil && loc.Lng != nil {
		name = utils.FormatLatLon(*loc.Lat, *loc.Lng)
	}
	return fmt.Sprintf("%04d:%s", index, name)
}
