package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/places-microservice/internal/config"
	"github.com/places-microservice/internal/domain"
	"github.com/places-microservice/internal/infrastructure/googleplaces"
	"github.com/places-microservice/internal/pkg/logger"
	"github.com/places-microservice/internal/repository/cache"
	redisRepo "github.com/places-microservice/internal/repository/redis"
	"github.com/places-microservice/internal/usecase"
	"github.com/places-microservice/internal/worker"
	"github.com/places-microservice/internal/worker/acquisition"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Places Acquisition Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Int("max_pages", cfg.Google.MaxPages),
		zap.Float64("default_radius", cfg.Google.DefaultRadiusMeters))

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Initialize repositories
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	resolver := googleplaces.NewResolver(&cfg.Google, log)
	resultWriter := redisRepo.NewStreamResultWriter(streamRepo, domain.StreamPlacesResults, log)

	// 5. Initialize use cases
	searchUC := usecase.NewSearchUseCase(
		resolver,
		log,
		cfg.Google.MaxPages,
		cfg.Google.PageTokenDelay,
		cfg.Google.PageTokenRetries,
		cfg.Google.DefaultRadiusMeters,
	)

	acquireUC := usecase.NewAcquireUseCase(searchUC, resultWriter, log)

	// 6. Initialize workers
	acquisitionWorker := acquisition.NewWorker(
		streamRepo,
		acquireUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		log,
	)

	// 7. Create worker manager and register workers
	workerManager := worker.NewManager(log)
	workerManager.Register(acquisitionWorker)

	// 8. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start workers
	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Cancel context to stop workers
	cancel()

	// Stop worker manager
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
