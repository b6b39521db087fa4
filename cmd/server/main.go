package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pratham9108106876/farm/internal/api"
	"github.com/Pratham9108106876/farm/internal/core/services/assistant"
	"github.com/Pratham9108106876/farm/internal/core/services/catalog"
	"github.com/Pratham9108106876/farm/internal/core/services/diagnosis"
	"github.com/Pratham9108106876/farm/internal/infrastructure/cache"
	"github.com/Pratham9108106876/farm/internal/infrastructure/database"
	"github.com/Pratham9108106876/farm/internal/infrastructure/database/repositories"
	"github.com/Pratham9108106876/farm/internal/infrastructure/gemini"
	"github.com/Pratham9108106876/farm/internal/infrastructure/queue"
	"github.com/Pratham9108106876/farm/internal/infrastructure/storage"
	"github.com/Pratham9108106876/farm/internal/pkg/config"
	"github.com/Pratham9108106876/farm/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	appLogger := logger.Initialize(cfg.Environment)
	cfg.LogConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Initialize(ctx); err != nil {
		appLogger.Error("failed to initialize database", slog.Any("error", err))
		os.Exit(1)
	}

	// The cache is optional: a missing Redis degrades catalog lookups
	// to the store, it never blocks startup.
	var redisCache *cache.RedisCache
	if rc, err := cache.NewRedisCache(cfg, appLogger); err != nil {
		appLogger.Warn("redis unavailable, running without cache",
			slog.Any("error", err))
	} else {
		redisCache = rc
		defer redisCache.Close()
	}

	localStorage, err := storage.NewLocalStorage(&storage.LocalStorageConfig{
		BasePath: cfg.StoragePath,
	}, appLogger)
	if err != nil {
		appLogger.Error("failed to set up storage", slog.Any("error", err))
		os.Exit(1)
	}

	// Same for the model: without an API key the online path degrades
	// to the service fallback and chat reports itself unavailable.
	var geminiClient *gemini.Client
	if cfg.GeminiAPIKey != "" {
		if gc, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, appLogger); err != nil {
			appLogger.Warn("gemini client unavailable, running degraded",
				slog.Any("error", err))
		} else {
			geminiClient = gc
		}
	} else {
		appLogger.Warn("no Gemini API key configured, running degraded")
	}

	cropRepo := repositories.NewCropRepository(db.DB, appLogger)
	diseaseRepo := repositories.NewDiseaseRepository(db.DB, appLogger)
	diagnosisRepo := repositories.NewDiagnosisRepository(db.DB, appLogger)

	var catalogCache catalog.Cache
	if redisCache != nil {
		catalogCache = redisCache
	}
	provider := catalog.NewProvider(cropRepo, diseaseRepo, catalogCache, cfg.CatalogBroadenLimit, appLogger)
	importer := catalog.NewImporter(cropRepo, diseaseRepo, nil, appLogger)

	var visionModel diagnosis.VisionModel
	var chatModel assistant.Model
	var identifier *diagnosis.CropIdentifier
	if geminiClient != nil {
		visionModel = geminiClient
		chatModel = geminiClient
		identifier = diagnosis.NewCropIdentifier(geminiClient, appLogger)
	}

	onlineClassifier := diagnosis.NewOnlineClassifier(visionModel, cfg.ParseFallbackConfidence, appLogger)
	offlineClassifier := diagnosis.NewOfflineClassifier(cfg.OfflineConfidenceMin, cfg.OfflineConfidenceSpan, appLogger)

	diagnosisService := diagnosis.NewService(
		provider,
		cropRepo,
		diagnosisRepo,
		localStorage,
		identifier,
		cfg.ServiceFallbackConfidence,
		appLogger,
	)
	assistantService := assistant.NewService(chatModel, appLogger)

	healthComponents := map[string]api.HealthChecker{
		"database": db,
	}
	if redisCache != nil {
		healthComponents["cache"] = redisCache
	}

	server := api.NewServer(cfg, appLogger)
	server.RegisterRoutes(&api.Handlers{
		Diagnose:  api.NewDiagnoseHandler(diagnosisService, onlineClassifier, offlineClassifier, appLogger),
		Catalog:   api.NewCatalogHandler(provider, importer, appLogger),
		Diagnoses: api.NewDiagnosesHandler(diagnosisRepo, localStorage, appLogger),
		Chat:      api.NewChatHandler(assistantService, appLogger),
		Health:    api.NewHealthHandler(healthComponents),
	}, localStorage.UploadsDir())

	var cleanupWorker *queue.CleanupWorker
	if cfg.CleanupEnabled && redisCache != nil {
		cleanupWorker = queue.NewCleanupWorker(cfg, localStorage, appLogger)
		go func() {
			if err := cleanupWorker.Start(); err != nil {
				appLogger.Error("cleanup worker stopped", slog.Any("error", err))
			}
		}()
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case <-ctx.Done():
		appLogger.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			appLogger.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed", slog.Any("error", err))
	}
	if cleanupWorker != nil {
		cleanupWorker.Shutdown()
	}

	appLogger.Info("shutdown complete")
}
