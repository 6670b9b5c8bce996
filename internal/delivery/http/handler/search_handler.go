package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	apperrors "github.com/places-microservice/internal/pkg/errors"
	"github.com/places-microservice/internal/pkg/utils"
	"github.com/places-microservice/internal/pkg/validator"
	"github.com/places-microservice/internal/usecase"
	"github.com/places-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// SearchHandler - обработчик поисковых запросов к Google Maps
type SearchHandler struct {
	searchUC *usecase.SearchUseCase
	logger   *zap.Logger
}

// NewSearchHandler - создание нового SearchHandler
func NewSearchHandler(searchUC *usecase.SearchUseCase, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchUC: searchUC,
		logger:   logger,
	}
}

// Search godoc
// @Summary Поиск мест по текстовому запросу
// @Description Выполняет текстовый поиск мест через Google Places API с прозрачным обходом пагинации. Локация задаётся либо свободным текстом (геокодируется автоматически), либо парой координат lat/lng. Записи возвращаются в том порядке, в котором их вернул Google.
// @Tags Search
// @Accept json
// @Produce json
// @Param q query string true "Поисковый запрос"
// @Param location query string false "Локация свободным текстом (город, адрес)"
// @Param lat query number false "Широта центра поиска"
// @Param lng query number false "Долгота центра поиска"
// @Param radius_meters query number false "Радиус поиска в метрах (по умолчанию 50000 при заданной локации)"
// @Param max_results query int false "Максимальное количество записей (0 - все страницы)"
// @Success 200 {object} utils.SuccessResponse{data=dto.SearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/search [get]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	req.Query = c.Query("q")
	req.Location = c.Query("location")
	req.RadiusMeters = c.QueryFloat("radius_meters", 0)
	req.MaxResults = c.QueryInt("max_results", 0)

	lat, lng, err := parseOptionalCoords(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	req.Lat = lat
	req.Lng = lng

	// Валидация
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.searchUC.Search(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
		Pages: result.Pages,
	})
}

// Geocode godoc
// @Summary Геокодирование текстового адреса
// @Description Преобразует адрес или название места в координаты. Возвращает первого кандидата и полный список кандидатов.
// @Tags Search
// @Accept json
// @Produce json
// @Param q query string true "Адрес или название места"
// @Success 200 {object} utils.SuccessResponse{data=dto.GeocodeResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/geocode [get]
func (h *SearchHandler) Geocode(c *fiber.Ctx) error {
	var req dto.GeocodeRequest
	req.Query = c.Query("q")

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.searchUC.Geocode(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// Distance godoc
// @Summary Расстояние между двумя точками
// @Description Вычисляет расстояние по формуле гаверсинусов (в метрах) между двумя парами координат. Удалённый сервис не вызывается.
// @Tags Geo
// @Accept json
// @Produce json
// @Param request body dto.DistanceRequest true "Две точки"
// @Success 200 {object} utils.SuccessResponse{data=dto.DistanceResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/distance [post]
func (h *SearchHandler) Distance(c *fiber.Ctx) error {
	var req dto.DistanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	meters := utils.HaversineDistance(req.From.Lat, req.From.Lng, req.To.Lat, req.To.Lng)

	return utils.SendSuccess(c, dto.DistanceResponse{
		DistanceMeters: meters,
	}, nil)
}

// MapsURL godoc
// @Summary Ссылка на Google Maps
// @Description Строит ссылку на Google Maps для места или вида карты. Удалённый сервис не вызывается.
// @Tags Geo
// @Accept json
// @Produce json
// @Param q query string true "Адрес или координаты в формате lat,lng"
// @Param zoom query int false "Уровень зума" default(15)
// @Param maptype query string false "Тип карты (roadmap, satellite, hybrid, terrain, google_earth)" default(roadmap)
// @Param layer query string false "Слой (bicycling, traffic, transit)"
// @Param language query string false "Язык интерфейса карты"
// @Param embed query bool false "Встраиваемая карта"
// @Success 200 {object} utils.SuccessResponse{data=dto.MapsURLResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/maps-url [get]
func (h *SearchHandler) MapsURL(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Query parameter 'q' is required"})
	}

	url := utils.GoogleMapsURL(query, utils.MapsURLOptions{
		Zoom:     c.QueryInt("zoom", 0),
		MapType:  c.Query("maptype"),
		Layer:    c.Query("layer"),
		Language: c.Query("language"),
		Embed:    c.QueryBool("embed", false),
	})

	return utils.SendSuccess(c, dto.MapsURLResponse{URL: url}, nil)
}

// parseOptionalCoords разбирает опциональные query-параметры lat/lng
func parseOptionalCoords(c *fiber.Ctx) (*float64, *float64, error) {
	var lat, lng *float64

	if raw := c.Query("lat"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, nil, apperrors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
				"lat": raw,
			})
		}
		lat = &v
	}
	if raw := c.Query("lng"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, nil, apperrors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
				"lng": raw,
			})
		}
		lng = &v
	}

	return lat, lng, nil
}
