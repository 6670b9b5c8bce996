package main

// @title Places Microservice API
// @version 1.0.0
// @description Микросервис-обёртка над Google Maps API для поиска мест. Скрывает детали аутентификации, геокодирования и постраничной выборки за простым HTTP API.
// @description
// @description Основные возможности:
// @description - Текстовый поиск мест с прозрачным обходом пагинации Google Places
// @description - Геокодирование адресов в координаты
// @description - Пакетный сбор мест по списку локаций через очередь заданий
// @description - Построение ссылок на Google Maps
// @description - Вычисление расстояний по формуле гаверсинусов

// @contact.name API Support
// @contact.email support@places-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/places-microservice/docs"
	"github.com/places-microservice/internal/config"
	httpDelivery "github.com/places-microservice/internal/delivery/http"
	"github.com/places-microservice/internal/delivery/http/handler"
	"github.com/places-microservice/internal/infrastructure/googleplaces"
	"github.com/places-microservice/internal/pkg/logger"
	"github.com/places-microservice/internal/repository/cache"
	redisRepo "github.com/places-microservice/internal/repository/redis"
	"github.com/places-microservice/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Places Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to Redis (очередь заданий пакетного сбора).
	// Поисковые эндпоинты работают и без Redis, поэтому сбой подключения
	// не фатален - отключаются только acquisitions
	var redisClient *cache.Redis
	var acquireHandler *handler.AcquireHandler

	redisClient, err = cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, acquisition endpoints disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Health(ctx); err != nil {
			log.Warn("Redis health check failed, acquisition endpoints disabled", zap.Error(err))
			redisClient = nil
		}
		cancel()
	}

	// 4. Initialize Repositories
	resolver := googleplaces.NewResolver(&cfg.Google, log)

	if redisClient != nil {
		streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
		acquireHandler = handler.NewAcquireHandler(streamRepo, log)
		log.Info("Redis connected, acquisition endpoints enabled")
	}

	// 5. Initialize Use Cases
	searchUC := usecase.NewSearchUseCase(
		resolver,
		log,
		cfg.Google.MaxPages,
		cfg.Google.PageTokenDelay,
		cfg.Google.PageTokenRetries,
		cfg.Google.DefaultRadiusMeters,
	)

	log.Info("Use cases initialized")

	// 6. Initialize HTTP Handlers
	searchHandler := handler.NewSearchHandler(searchUC, log)

	log.Info("HTTP handlers initialized")

	// 7. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		redisClient,
		searchHandler,
		acquireHandler,
	)

	log.Info("HTTP server initialized")

	// 8. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
