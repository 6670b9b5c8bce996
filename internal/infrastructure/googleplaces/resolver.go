package googleplaces

import (
	"os"

	"github.com/places-microservice/internal/config"
	"github.com/places-microservice/internal/domain/repository"
	"github.com/places-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type resolver struct {
	cfg    *config.GoogleConfig
	logger *zap.Logger
}

// NewResolver создает резолвер клиентов Google Maps API.
// Резолвер не выполняет сетевых операций: он лишь читает окружение
// и конструирует клиент
func NewResolver(cfg *config.GoogleConfig, logger *zap.Logger) repository.ClientResolver {
	return &resolver{
		cfg:    cfg,
		logger: logger,
	}
}

// Resolve превращает ClientSpec в готовый PlacesClient по тегу варианта:
//   - готовый клиент возвращается как есть, новый не конструируется;
//   - литеральный ключ используется напрямую, без проверки корректности
//     (невалидный ключ всплывёт как ошибка удалённого вызова);
//   - имя переменной окружения читается из процесса; пустое или
//     отсутствующее значение - ошибка MISSING_CREDENTIAL
func (r *resolver) Resolve(spec repository.ClientSpec) (repository.PlacesClient, error) {
	switch spec.Kind() {
	case repository.ClientSpecPrebuilt:
		return spec.Client(), nil

	case repository.ClientSpecLiteralKey:
		return NewClient(r.cfg, spec.Value(), r.logger), nil

	default:
		name := spec.Value()
		if name == "" {
			name = r.cfg.APIKeyEnvVar
		}
		if name == "" {
			name = config.DefaultAPIKeyEnvVar
		}

		key := os.Getenv(name)
		if key == "" {
			r.logger.Warn("Google API key environment variable is not set",
				zap.String("env_var", name))
			return nil, errors.ErrMissingCredential.WithDetails(map[string]interface{}{
				"env_var": name,
			})
		}

		return NewClient(r.cfg, key, r.logger), nil
	}
}
