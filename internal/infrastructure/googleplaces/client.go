package googleplaces

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/places-microservice/internal/config"
	"github.com/places-microservice/internal/domain"
	"github.com/places-microservice/internal/domain/repository"
	"github.com/places-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

const (
	geocodePath    = "/maps/api/geocode/json"
	textSearchPath = "/maps/api/place/textsearch/json"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	language   string
	logger     *zap.Logger
}

// NewClient создает новый клиент Google Maps API, аутентифицированный
// переданным ключом. Сетевых запросов при создании не выполняется -
// корректность ключа проверяется лениво при первом реальном вызове
func NewClient(cfg *config.GoogleConfig, apiKey string, logger *zap.Logger) repository.PlacesClient {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:  cfg.BaseURL,
		apiKey:   apiKey,
		language: cfg.Language,
		logger:   logger,
	}
}

// Geocode преобразует текстовый адрес в список координат-кандидатов.
// ZERO_RESULTS - не ошибка: возвращается пустой список
func (c *client) Geocode(ctx context.Context, address string) ([]domain.Coordinates, error) {
	params := url.Values{}
	params.Set("address", address)
	if c.language != "" {
		params.Set("language", c.language)
	}
	params.Set("key", c.apiKey)

	c.logger.Debug("Calling Google Geocoding API",
		zap.String("address", address))

	var geoResp geocodeResponse
	if err := c.get(ctx, geocodePath, params, &geoResp); err != nil {
		return nil, err
	}

	if geoResp.Status != statusOK && geoResp.Status != statusZeroResults {
		c.logger.Error("Geocoding API returned non-OK status",
			zap.String("status", geoResp.Status),
			zap.String("error_message", geoResp.ErrorMessage))
		return nil, errors.ErrRemoteService.WithDetails(map[string]interface{}{
			"status":  geoResp.Status,
			"message": geoResp.ErrorMessage,
		})
	}

	coords := make([]domain.Coordinates, 0, len(geoResp.Results))
	for _, result := range geoResp.Results {
		coords = append(coords, result.Geometry.Location)
	}

	c.logger.Debug("Geocoding API call successful",
		zap.String("address", address),
		zap.Int("candidates", len(coords)))

	return coords, nil
}

// SearchPlaces выполняет один запрос текстового поиска мест.
// INVALID_REQUEST на запросе с токеном продолжения означает, что токен
// ещё не активирован сервисом - такой ответ маркируется отдельной ошибкой,
// чтобы оркестратор мог повторить запрос
func (c *client) SearchPlaces(ctx context.Context, p domain.PlaceSearchParams) (*domain.ResultPage, error) {
	params := url.Values{}
	params.Set("query", p.Query)
	if p.Location != nil {
		params.Set("location", fmt.Sprintf("%f,%f", p.Location.Lat, p.Location.Lng))
	}
	if p.RadiusMeters > 0 {
		params.Set("radius", strconv.Itoa(int(p.RadiusMeters)))
	}
	if p.PageToken != "" {
		params.Set("pagetoken", p.PageToken)
	}
	if c.language != "" {
		params.Set("language", c.language)
	}
	params.Set("key", c.apiKey)

	c.logger.Debug("Calling Google Places Text Search API",
		zap.String("query", p.Query),
		zap.Bool("has_page_token", p.PageToken != ""))

	var searchResp textSearchResponse
	if err := c.get(ctx, textSearchPath, params, &searchResp); err != nil {
		return nil, err
	}

	if searchResp.Status != statusOK && searchResp.Status != statusZeroResults {
		if searchResp.Status == statusInvalidRequest && p.PageToken != "" {
			c.logger.Debug("Page token not accepted yet",
				zap.String("status", searchResp.Status))
			return nil, errors.ErrPageTokenNotReady.WithDetails(map[string]interface{}{
				"status":  searchResp.Status,
				"message": searchResp.ErrorMessage,
			})
		}
		c.logger.Error("Places API returned non-OK status",
			zap.String("status", searchResp.Status),
			zap.String("error_message", searchResp.ErrorMessage))
		return nil, errors.ErrRemoteService.WithDetails(map[string]interface{}{
			"status":  searchResp.Status,
			"message": searchResp.ErrorMessage,
		})
	}

	c.logger.Debug("Places API call successful",
		zap.String("query", p.Query),
		zap.Int("records", len(searchResp.Results)),
		zap.Bool("has_next_page", searchResp.NextPageToken != ""))

	return &domain.ResultPage{
		Records:       searchResp.Results,
		NextPageToken: searchResp.NextPageToken,
	}, nil
}

// get выполняет GET-запрос к API и декодирует JSON-ответ.
// Ключ API в логи не попадает
func (c *client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	fullURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return errors.ErrRemoteService.WithDetails(map[string]interface{}{
			"message": err.Error(),
		})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return errors.ErrRemoteService.WithDetails(map[string]interface{}{
			"message": err.Error(),
		})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Google Maps API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return errors.ErrRemoteService.WithDetails(map[string]interface{}{
			"status":  strconv.Itoa(resp.StatusCode),
			"message": string(body),
		})
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return errors.ErrRemoteService.WithDetails(map[string]interface{}{
			"message": fmt.Sprintf("failed to decode response: %v", err),
		})
	}

	return nil
}
