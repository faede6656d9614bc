package main

// @title Safety Navigator API
// @version 1.0.0
// @description Сервис оценки безопасности пешеходных маршрутов по данным OpenStreetMap и голосовой навигации к цели.
// @description
// @description Основные возможности:
// @description - Оценка риска точки и маршрута с учетом времени суток
// @description - Поиск ближайших экстренных служб
// @description - Навигация к цели с голосовыми подсказками
// @description - Журнал GPS позиций и компас

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey DeviceToken
// @in header
// @name Authorization

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/safety-navigator/docs/swagger"
	"github.com/safety-navigator/internal/config"
	httpDelivery "github.com/safety-navigator/internal/delivery/http"
	"github.com/safety-navigator/internal/delivery/http/handler"
	"github.com/safety-navigator/internal/domain"
	"github.com/safety-navigator/internal/domain/repository"
	"github.com/safety-navigator/internal/infrastructure/speech"
	"github.com/safety-navigator/internal/pkg/auth"
	"github.com/safety-navigator/internal/pkg/logger"
	"github.com/safety-navigator/internal/repository/cache"
	"github.com/safety-navigator/internal/repository/overpass"
	"github.com/safety-navigator/internal/repository/postgres"
	"github.com/safety-navigator/internal/repository/postgresosm"
	redisRepo "github.com/safety-navigator/internal/repository/redis"
	"github.com/safety-navigator/internal/usecase"
	"github.com/safety-navigator/internal/worker"
	"github.com/safety-navigator/internal/worker/navigation"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "safety-navigator-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Invalid timezone", zap.Error(err))
	}

	log.Info("Starting Safety Navigator")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("feature_provider", cfg.Provider.Kind),
		zap.String("timezone", loc.String()),
	)

	checks := make(map[string]httpDelivery.HealthChecker)

	// 3. Map feature provider
	var provider repository.MapFeatureProvider
	switch cfg.Provider.Kind {
	case "postgis":
		osmDB, err := postgresosm.New(&cfg.OSM, log)
		if err != nil {
			log.Fatal("Failed to connect to OSM PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := osmDB.Close(); err != nil {
				log.Error("Failed to close OSM PostgreSQL connection", zap.Error(err))
			}
		}()
		checks["osm_db"] = osmDB
		provider = postgresosm.NewFeatureRepository(osmDB)
		log.Info("OSM PostgreSQL connected")
	case "overpass":
		provider = overpass.NewClient(cfg.Provider.OverpassURL, cfg.Provider.OverpassMaxParallel,
			cfg.Provider.OverpassTimeout, log)
		log.Info("Overpass provider configured", zap.String("url", cfg.Provider.OverpassURL))
	default:
		log.Fatal("Unknown feature provider", zap.String("kind", cfg.Provider.Kind))
	}

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	checks["redis"] = redisClient
	log.Info("Redis connected")

	cacheRepo := cache.NewCacheRepository(redisClient)
	provider = cache.NewCachedFeatureProvider(provider, cacheRepo, cfg.Cache.FeatureTTL, log)

	// 5. Connect to PostgreSQL (журнал GPS)
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	checks["postgres"] = db

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.EnsureSchema(ctx); err != nil {
		cancel()
		log.Fatal("Failed to prepare GPS schema", zap.Error(err))
	}
	cancel()
	log.Info("PostgreSQL connected")

	gpsRepo := postgres.NewGPSRepository(db)

	// 6. Announcements
	speakers := []usecase.Speaker{speech.NewLogSpeaker(log)}
	if cfg.Announcer.StreamEnabled {
		streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
		speakers = append(speakers, speech.NewStreamSpeaker(streamRepo, domain.StreamNavigationAnnounce))
		log.Info("Announcements published to stream", zap.String("stream", domain.StreamNavigationAnnounce))
	}
	scheduler := usecase.NewAnnouncementScheduler(log, cfg.Announcer.QueueSize, speakers...)

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()
	scheduler.Start(appCtx)

	// 7. Initialize Use Cases
	clock := usecase.SystemClock()
	timeRisk := usecase.NewTimeRiskModel(clock, loc)

	safetyUC := usecase.NewSafetyUseCase(provider, timeRisk, usecase.SafetyConfig{
		SearchRadius:    cfg.Safety.SearchRadius,
		ProviderTimeout: cfg.Safety.ProviderTimeout,
		RouteSegments:   cfg.Safety.RouteSegments,
	}, log)

	tracker := usecase.NewNavigationTracker(scheduler, clock, domain.NavigationThresholds{
		DistanceChangeMeters: cfg.Navigation.DistanceThreshold,
		AnnounceInterval:     cfg.Navigation.AnnounceInterval,
		ArrivalMeters:        cfg.Navigation.ArrivalThreshold,
	}, log)

	gpsUC := usecase.NewGPSUseCase(gpsRepo, tracker, safetyUC, clock, usecase.GPSConfig{
		DefaultLocation: domain.Coordinate{
			Latitude:  cfg.GPS.DefaultLatitude,
			Longitude: cfg.GPS.DefaultLongitude,
		},
		BLERetention: cfg.GPS.BLERetention,
	}, log)

	log.Info("Use cases initialized")

	// 8. Background workers
	sweeper, err := navigation.NewSessionSweeper(tracker, cfg.Navigation.SweepSchedule,
		cfg.Navigation.SessionIdleTimeout, log)
	if err != nil {
		log.Fatal("Failed to create session sweeper", zap.Error(err))
	}
	workerManager := worker.NewWorkerManager(log, 10*time.Second)
	workerManager.Register(sweeper)
	if err := workerManager.Start(appCtx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 9. Initialize HTTP Server
	var signer *auth.Signer
	if cfg.Auth.JWTSecret != "" {
		signer = auth.NewSigner(cfg.Auth.JWTSecret)
		log.Info("Device token authentication enabled")
	} else {
		log.Warn("AUTH_JWT_SECRET is empty, navigation and GPS routes are open")
	}

	server := httpDelivery.NewServer(
		cfg,
		log,
		signer,
		checks,
		handler.NewSafetyHandler(safetyUC, log),
		handler.NewNavigationHandler(tracker, log),
		handler.NewGPSHandler(gpsUC, log),
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	// недоставленные подсказки отбрасываются
	scheduler.Stop()
	appCancel()

	log.Info("Server stopped successfully")
}
