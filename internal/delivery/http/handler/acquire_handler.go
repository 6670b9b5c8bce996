package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/places-microservice/internal/domain"
	"github.com/places-microservice/internal/domain/repository"
	apperrors "github.com/places-microservice/internal/pkg/errors"
	"github.com/places-microservice/internal/pkg/utils"
	"github.com/places-microservice/internal/pkg/validator"
	"github.com/places-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// AcquireHandler - обработчик заданий пакетного сбора мест
type AcquireHandler struct {
	streamRepo repository.StreamRepository
	logger     *zap.Logger
}

// NewAcquireHandler - создание нового AcquireHandler
func NewAcquireHandler(streamRepo repository.StreamRepository, logger *zap.Logger) *AcquireHandler {
	return &AcquireHandler{
		streamRepo: streamRepo,
		logger:     logger,
	}
}

// Acquire godoc
// @Summary Запуск пакетного сбора мест
// @Description Ставит задание на сбор мест по списку локаций в очередь. Для каждой локации выполняется полный поиск с обходом пагинации, результаты публикуются в поток результатов. Обработка асинхронная, ответ приходит сразу.
// @Tags Acquisition
// @Accept json
// @Produce json
// @Param request body dto.AcquireRequest true "Задание на сбор"
// @Success 202 {object} utils.SuccessResponse{data=dto.AcquireAcceptedResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/acquisitions [post]
func (h *AcquireHandler) Acquire(c *fiber.Ctx) error {
	var req dto.AcquireRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	job := domain.AcquireJobEvent{
		JobID:           uuid.New().String(),
		Query:           req.Query,
		Locations:       make([]domain.AcquireLocation, 0, len(req.Locations)),
		RadiusMeters:    req.RadiusMeters,
		ContinueOnError: req.ContinueOnError,
	}
	for _, loc := range req.Locations {
		job.Locations = append(job.Locations, domain.AcquireLocation{
			Text: loc.Text,
			Lat:  loc.Lat,
			Lng:  loc.Lng,
		})
	}

	if err := h.streamRepo.PublishToStream(c.Context(), domain.StreamPlacesAcquire, job); err != nil {
		h.logger.Error("Failed to publish acquire job",
			zap.String("job_id", job.JobID),
			zap.Error(err))
		return utils.SendError(c, apperrors.ErrStreamError)
	}

	h.logger.Info("Acquire job accepted",
		zap.String("job_id", job.JobID),
		zap.Int("locations", len(job.Locations)))

	c.Status(fiber.StatusAccepted)
	return utils.SendSuccess(c, dto.AcquireAcceptedResponse{
		JobID:     job.JobID,
		Locations: len(job.Locations),
	}, nil)
}
