package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/safety-navigator/internal/config"
	"github.com/safety-navigator/internal/domain/repository"
	"github.com/safety-navigator/internal/pkg/logger"
	"github.com/safety-navigator/internal/repository/cache"
	"github.com/safety-navigator/internal/repository/overpass"
	"github.com/safety-navigator/internal/repository/postgresosm"
	redisRepo "github.com/safety-navigator/internal/repository/redis"
	"github.com/safety-navigator/internal/usecase"
	"github.com/safety-navigator/internal/worker"
	"github.com/safety-navigator/internal/worker/safety"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "safety-check-worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Invalid timezone", zap.Error(err))
	}

	log.Info("Starting Safety Check Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.String("consumer_name", cfg.Worker.ConsumerName),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.String("feature_provider", cfg.Provider.Kind))

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
		provider = postgresosm.NewFeatureRepository(osmDB)
	case "overpass":
		provider = overpass.NewClient(cfg.Provider.OverpassURL, cfg.Provider.OverpassMaxParallel,
			cfg.Provider.OverpassTimeout, log)
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

	// 5. Initialize repositories
	provider = cache.NewCachedFeatureProvider(provider, cache.NewCacheRepository(redisClient), cfg.Cache.FeatureTTL, log)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)

	// 6. Initialize use cases
	safetyUC := usecase.NewSafetyUseCase(provider, usecase.NewTimeRiskModel(usecase.SystemClock(), loc), usecase.SafetyConfig{
		SearchRadius:    cfg.Safety.SearchRadius,
		ProviderTimeout: cfg.Safety.ProviderTimeout,
		RouteSegments:   cfg.Safety.RouteSegments,
	}, log)

	// 7. Initialize workers
	checkWorker := safety.NewSafetyCheckWorker(streamRepo, safetyUC, safety.Config{
		ConsumerGroup: cfg.Worker.ConsumerGroup,
		ConsumerName:  cfg.Worker.ConsumerName,
		BatchSize:     cfg.Worker.BatchSize,
		MaxRetries:    cfg.Worker.MaxRetries,
	}, log)

	workerManager := worker.NewWorkerManager(log, 0)
	workerManager.Register(checkWorker)

	// 8. Start workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// отмена прерывает блокирующее чтение стрима
	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
