package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/places-microservice/internal/domain"
	"github.com/places-microservice/internal/domain/repository"
	apperrors "github.com/places-microservice/internal/pkg/errors"
	"github.com/places-microservice/internal/pkg/utils"
	"github.com/places-microservice/internal/usecase/dto"
)

// SearchUseCase - use case поиска мест: резолвинг клиента, геокодирование
// текстовой локации и прозрачный обход пагинации
type SearchUseCase struct {
	resolver         repository.ClientResolver
	logger           *zap.Logger
	maxPages         int
	pageTokenDelay   time.Duration
	pageTokenRetries int
	defaultRadius    float64
}

// NewSearchUseCase - создание нового SearchUseCase.
// maxPages ограничивает число страниц пагинации (у Google их максимум 3),
// pageTokenDelay и pageTokenRetries управляют ожиданием активации
// токена продолжения, defaultRadius подставляется, когда локация задана
// без радиуса
func NewSearchUseCase(
	resolver repository.ClientResolver,
	logger *zap.Logger,
	maxPages int,
	pageTokenDelay time.Duration,
	pageTokenRetries int,
	defaultRadius float64,
) *SearchUseCase {
	return &SearchUseCase{
		resolver:         resolver,
		logger:           logger,
		maxPages:         maxPages,
		pageTokenDelay:   pageTokenDelay,
		pageTokenRetries: pageTokenRetries,
		defaultRadius:    defaultRadius,
	}
}

// Search выполняет поиск мест по текстовому запросу с опциональной
// локацией и радиусом. Все страницы результатов агрегируются в один
// плоский список, порядок записей сохраняется как у сервиса.
//
// Радиус без локации не считается ошибкой: он передаётся сервису как есть,
// и интерпретация остаётся за самим Google Maps API.
//
// Любой сбой посреди пагинации роняет весь вызов - частичные результаты
// не возвращаются
func (uc *SearchUseCase) Search(ctx context.Context, req dto.SearchRequest) (*dto.SearchResponse, error) {
	// Валидация до каких-либо сетевых вызовов
	if strings.TrimSpace(req.Query) == "" {
		return nil, apperrors.ErrInvalidQuery
	}
	if req.RadiusMeters != 0 && !utils.ValidateRadiusMeters(req.RadiusMeters) {
		return nil, apperrors.ErrInvalidRadius.WithDetails(map[string]interface{}{
			"radius_meters": req.RadiusMeters,
		})
	}
	if (req.Lat == nil) != (req.Lng == nil) {
		return nil, apperrors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"reason": "lat and lng must be provided together",
		})
	}
	if req.Lat != nil && !utils.ValidateCoordinates(*req.Lat, *req.Lng) {
		return nil, apperrors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"lat": *req.Lat,
			"lng": *req.Lng,
		})
	}

	// Резолвинг клиента; MISSING_CREDENTIAL уходит наружу без изменений
	client, err := uc.resolver.Resolve(req.ClientSpec)
	if err != nil {
		return nil, err
	}

	// Определение координат: явные координаты имеют приоритет,
	// текстовая локация сначала геокодируется
	var location *domain.Coordinates
	switch {
	case req.Lat != nil:
		location = &domain.Coordinates{Lat: *req.Lat, Lng: *req.Lng}
	case req.Location != "":
		candidates, err := client.Geocode(ctx, req.Location)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			uc.logger.Warn("Location could not be geocoded",
				zap.String("location", req.Location))
			return nil, apperrors.ErrLocationNotFound.WithDetails(map[string]interface{}{
				"location": req.Location,
			})
		}
		location = &candidates[0]
	}

	radius := req.RadiusMeters
	if radius == 0 && location != nil {
		radius = uc.defaultRadius
	}

	records, pages, err := uc.collectPages(ctx, client, domain.PlaceSearchParams{
		Query:        req.Query,
		Location:     location,
		RadiusMeters: radius,
	}, req.MaxResults)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Place search completed",
		zap.String("query", req.Query),
		zap.Int("records", len(records)),
		zap.Int("pages", pages))

	return &dto.SearchResponse{
		Records: records,
		Total:   len(records),
		Pages:   pages,
	}, nil
}

// Geocode возвращает координаты-кандидаты для текстового адреса.
// Ноль кандидатов - ошибка LOCATION_NOT_FOUND
func (uc *SearchUseCase) Geocode(ctx context.Context, req dto.GeocodeRequest) (*dto.GeocodeResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, apperrors.ErrInvalidQuery
	}

	client, err := uc.resolver.Resolve(req.ClientSpec)
	if err != nil {
		return nil, err
	}

	candidates, err := client.Geocode(ctx, req.Query)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, apperrors.ErrLocationNotFound.WithDetails(map[string]interface{}{
			"location": req.Query,
		})
	}

	return &dto.GeocodeResponse{
		Location:   candidates[0],
		Candidates: candidates,
		Total:      len(candidates),
	}, nil
}

// collectPages последовательно обходит страницы результатов. Страница N+1
// зависит от токена страницы N, поэтому запросы строго последовательны.
// Достижение maxPages завершает обход тихо, без ошибки усечения -
// так же вёл себя исходный клиент
func (uc *SearchUseCase) collectPages(
	ctx context.Context,
	client repository.PlacesClient,
	params domain.PlaceSearchParams,
	maxResults int,
) ([]domain.PlaceRecord, int, error) {
	records := make([]domain.PlaceRecord, 0)
	pages := 0

	for {
		var page *domain.ResultPage
		var err error

		if params.PageToken == "" {
			page, err = client.SearchPlaces(ctx, params)
		} else {
			page, err = uc.fetchContinuation(ctx, client, params)
		}
		if err != nil {
			return nil, 0, err
		}

		records = append(records, page.Records...)
		pages++

		if maxResults > 0 && len(records) >= maxResults {
			records = records[:maxResults]
			break
		}
		if page.NextPageToken == "" || pages >= uc.maxPages {
			break
		}
		params.PageToken = page.NextPageToken
	}

	return records, pages, nil
}

// fetchContinuation запрашивает страницу по токену продолжения.
// Сервис отклоняет токен, использованный слишком рано, поэтому перед
// каждой попыткой выдерживается пауза; попытки ограничены, после чего
// наружу уходит REMOTE_SERVICE_ERROR. Пауза - таймер текущего вызова,
// параллельные поиски она не блокирует
func (uc *SearchUseCase) fetchContinuation(
	ctx context.Context,
	client repository.PlacesClient,
	params domain.PlaceSearchParams,
) (*domain.ResultPage, error) {
	var lastErr error

	for attempt := 1; attempt <= uc.pageTokenRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(uc.pageTokenDelay):
		}

		page, err := client.SearchPlaces(ctx, params)
		if err == nil {
			return page, nil
		}
		if !errors.Is(err, apperrors.ErrPageTokenNotReady) {
			return nil, err
		}

		uc.logger.Debug("Page token not ready, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", uc.pageTokenRetries))
		lastErr = err
	}

	uc.logger.Error("Page token was never accepted",
		zap.Int("attempts", uc.pageTokenRetries),
		zap.Error(lastErr))

	return nil, apperrors.ErrRemoteService.WithDetails(map[string]interface{}{
		"status":  "PAGE_TOKEN_NOT_READY",
		"message": lastErr.Error(),
	})
}
