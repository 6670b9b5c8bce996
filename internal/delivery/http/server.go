package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/places-microservice/internal/config"
	"github.com/places-microservice/internal/delivery/http/handler"
	"github.com/places-microservice/internal/delivery/http/middleware"
	"github.com/places-microservice/internal/repository/cache"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger
	redis  *cache.Redis

	// Handlers
	searchHandler  *handler.SearchHandler
	acquireHandler *handler.AcquireHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	redis *cache.Redis,
	searchHandler *handler.SearchHandler,
	acquireHandler *handler.AcquireHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Places Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		redis:          redis,
		searchHandler:  searchHandler,
		acquireHandler: acquireHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		status := "healthy"
		redisStatus := "ok"
		if s.redis != nil {
			if err := s.redis.Health(c.Context()); err != nil {
				status = "degraded"
				redisStatus = err.Error()
			}
		} else {
			redisStatus = "disabled"
		}
		return c.JSON(fiber.Map{
			"status": status,
			"redis":  redisStatus,
			"time":   time.Now(),
		})
	})

	// Search routes
	api.Get("/search", s.searchHandler.Search)
	api.Get("/geocode", s.searchHandler.Geocode)

	// Geo utility routes
	api.Get("/maps-url", s.searchHandler.MapsURL)
	api.Post("/distance", s.searchHandler.Distance)

	// Acquisition routes
	if s.acquireHandler != nil {
		api.Post("/acquisitions", s.acquireHandler.Acquire)
	}
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// App возвращает fiber.App для тестов
func (s *Server) App() *fiber.App {
	return s.app
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
