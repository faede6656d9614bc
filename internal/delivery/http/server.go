package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/safety-navigator/internal/config"
	"github.com/safety-navigator/internal/delivery/http/handler"
	"github.com/safety-navigator/internal/delivery/http/middleware"
	"github.com/safety-navigator/internal/pkg/auth"
	"github.com/safety-navigator/internal/pkg/errors"
	"github.com/safety-navigator/internal/pkg/utils"
)

// HealthChecker - зависимость, которую проверяет /health
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger
	signer *auth.Signer
	checks map[string]HealthChecker

	// Handlers
	safetyHandler     *handler.SafetyHandler
	navigationHandler *handler.NavigationHandler
	gpsHandler        *handler.GPSHandler
}

// NewServer - создание нового HTTP сервера.
// signer nil - маршруты навигации и GPS без авторизации.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	signer *auth.Signer,
	checks map[string]HealthChecker,
	safetyHandler *handler.SafetyHandler,
	navigationHandler *handler.NavigationHandler,
	gpsHandler *handler.GPSHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName: "Safety Navigator",
		// Анализ маршрута делает до шести запросов к источнику карты
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:               app,
		config:            cfg,
		logger:            logger,
		signer:            signer,
		checks:            checks,
		safetyHandler:     safetyHandler,
		navigationHandler: navigationHandler,
		gpsHandler:        gpsHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - для тестов через app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.health)

	// Safety routes
	safety := api.Group("/safety")
	safety.Get("/analyze-location", s.safetyHandler.AnalyzeLocation)
	safety.Get("/analyze-route", s.safetyHandler.AnalyzeRoute)
	safety.Get("/check-destination", s.safetyHandler.CheckDestination)
	safety.Get("/emergency-services", s.safetyHandler.EmergencyServices)

	deviceAuth := middleware.DeviceAuth(s.signer)

	// Navigation routes
	nav := api.Group("/navigation")
	nav.Get("/status", s.navigationHandler.Status)
	nav.Put("/thresholds", deviceAuth, s.navigationHandler.SetThresholds)
	nav.Post("/start", deviceAuth, s.navigationHandler.Start)
	nav.Post("/update", deviceAuth, s.navigationHandler.Update)
	nav.Post("/stop", deviceAuth, s.navigationHandler.Stop)
	nav.Get("/:deviceId", deviceAuth, s.navigationHandler.Get)

	// GPS routes
	gps := api.Group("/gps", deviceAuth)
	gps.Post("/", s.gpsHandler.Record)
	gps.Get("/", s.gpsHandler.Latest)
	gps.Get("/history", s.gpsHandler.History)
	gps.Post("/compass", s.gpsHandler.Compass)
}

// health - состояние сервиса и его зависимостей
func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "healthy"
	deps := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check.Health(ctx); err != nil {
			s.logger.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
			deps[name] = "unavailable"
			status = "degraded"
			continue
		}
		deps[name] = "ok"
	}

	return c.JSON(fiber.Map{
		"status":       status,
		"dependencies": deps,
		"time":         time.Now(),
	})
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

// customErrorHandler - ошибки fiber (404 маршрута, 405, тело запроса) в общем формате ответа
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(utils.ErrorResponse{
			Error: errors.New("HTTP_ERROR", message, code),
		})
	}
}
