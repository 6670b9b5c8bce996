package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// DefaultAPIKeyEnvVar - имя переменной окружения с ключом Google API
// по умолчанию; видимая константа, а не скрытое состояние модуля
const DefaultAPIKeyEnvVar = "GOOGLE_API_KEY"

type Config struct {
	Server ServerConfig
	Google GoogleConfig
	Redis  RedisConfig
	Log    LogConfig
	Worker WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// GoogleConfig - настройки клиента Google Maps API
type GoogleConfig struct {
	BaseURL             string
	APIKeyEnvVar        string        // откуда читать ключ, если он не задан явно
	RequestTimeout      time.Duration
	MaxPages            int           // лимит страниц пагинации (у Google максимум 3)
	PageTokenDelay      time.Duration // минимальная пауза перед использованием next_page_token
	PageTokenRetries    int           // сколько раз повторять запрос с ещё не активным токеном
	DefaultRadiusMeters float64       // радиус поиска, если локация задана без радиуса
	Language            string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Google: GoogleConfig{
			BaseURL:             viper.GetString("GOOGLE_MAPS_BASE_URL"),
			APIKeyEnvVar:        viper.GetString("GOOGLE_API_KEY_ENV_VAR"),
			RequestTimeout:      time.Duration(viper.GetInt("GOOGLE_REQUEST_TIMEOUT")) * time.Second,
			MaxPages:            viper.GetInt("GOOGLE_MAX_PAGES"),
			PageTokenDelay:      time.Duration(viper.GetInt("GOOGLE_PAGE_TOKEN_DELAY_MS")) * time.Millisecond,
			PageTokenRetries:    viper.GetInt("GOOGLE_PAGE_TOKEN_RETRIES"),
			DefaultRadiusMeters: viper.GetFloat64("GOOGLE_DEFAULT_RADIUS_METERS"),
			Language:            viper.GetString("GOOGLE_LANGUAGE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	// Set default values if not provided
	if cfg.Google.BaseURL == "" {
		cfg.Google.BaseURL = "https://maps.googleapis.com"
	}
	if cfg.Google.APIKeyEnvVar == "" {
		cfg.Google.APIKeyEnvVar = DefaultAPIKeyEnvVar
	}
	if cfg.Google.RequestTimeout == 0 {
		cfg.Google.RequestTimeout = 30 * time.Second
	}
	if cfg.Google.MaxPages == 0 {
		cfg.Google.MaxPages = 3
	}
	if cfg.Google.PageTokenDelay == 0 {
		cfg.Google.PageTokenDelay = 2 * time.Second
	}
	if cfg.Google.PageTokenRetries == 0 {
		cfg.Google.PageTokenRetries = 3
	}
	if cfg.Google.DefaultRadiusMeters == 0 {
		cfg.Google.DefaultRadiusMeters = 50000
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "places-acquisition-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
