package main

// @title Heritage Explorer Local API
// @version 1.0.0
// @description Локальный сервер мобильного клиента каталога наследия: страница карты для WebView, мост карты и JSON API для нативной оболочки.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8090
// @BasePath /
// @schemes http

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/heritage-explorer/docs"
	"github.com/heritage-explorer/internal/bridge"
	"github.com/heritage-explorer/internal/config"
	httpDelivery "github.com/heritage-explorer/internal/delivery/http"
	"github.com/heritage-explorer/internal/delivery/http/handler"
	"github.com/heritage-explorer/internal/domain"
	"github.com/heritage-explorer/internal/domain/repository"
	"github.com/heritage-explorer/internal/infrastructure/heritageapi"
	"github.com/heritage-explorer/internal/pkg/logger"
	"github.com/heritage-explorer/internal/pkg/metrics"
	"github.com/heritage-explorer/internal/repository/cache"
	"github.com/heritage-explorer/internal/repository/kvstore"
	"github.com/heritage-explorer/internal/repository/session"
	"github.com/heritage-explorer/internal/usecase"
	"github.com/heritage-explorer/internal/worker"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(logger.Options{
		Level:      cfg.Log.Level,
		OutputPath: cfg.Log.OutputPath,
		Service:    "heritage-explorer",
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Heritage Explorer")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("api", cfg.API.BaseURL),
		zap.String("storage", cfg.Storage.Driver),
	)

	// 3. Tables and metrics
	tables, err := config.LoadTables(cfg.Map.TablesFile)
	if err != nil {
		log.Fatal("Failed to load map tables", zap.Error(err))
	}
	m := metrics.New()

	// 4. Connect to Redis (optional)
	var (
		redisClient *cache.Redis
		cacheRepo   repository.CacheRepository
		cachePinger handler.Pinger
	)
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cacheRepo = cache.NewCacheRepository(redisClient)
		cachePinger = redisClient
		log.Info("Redis connected")
	}

	// 5. Device storage and session repository
	store, err := kvstore.Open(&cfg.Storage, redisClient, log)
	if err != nil {
		log.Fatal("Failed to open session storage", zap.Error(err))
	}
	sessionRepo := session.NewSessionRepository(store, log)

	// 6. Backend client
	client := heritageapi.NewClient(&cfg.API, sessionRepo, m, log)

	// 7. Initialize Use Cases
	classifier := domain.NewClassifier(tables.Categories)

	sessionUC := usecase.NewSessionUseCase(sessionRepo, client, client, m, log)
	client.SetUnauthorizedHandler(sessionUC.HandleUnauthorized)

	catalogUC := usecase.NewCatalogUseCase(
		client,
		client,
		cacheRepo,
		classifier,
		sessionUC,
		cfg.Cache.StatsTTL,
		cfg.Bridge.Language,
		log,
	)
	filterUC := usecase.NewFilterUseCase(client, cacheRepo, cfg.Cache.FiltersTTL, log)
	submissionUC := usecase.NewSubmissionUseCase(client, log)

	log.Info("Use cases initialized")

	// 8. Map bridge
	host := bridge.NewHost(bridge.NewMarkerBuilder(classifier, tables.Map), cfg.Bridge.QueueSize, m, log)
	surface, err := bridge.NewSurface(classifier, cfg.Bridge.Language)
	if err != nil {
		log.Fatal("Failed to load map surface", zap.Error(err))
	}

	mapController := usecase.NewMapController(client, filterUC, host, host, tables.Map, m, log)
	filterUC.Subscribe(mapController.OnFilterChange)

	// 9. Workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(worker.NewBridgeDispatcher(host, mapController, m, log))
	workerManager.Register(worker.NewStatsRefresher(catalogUC, cfg.Cache.StatsTTL, log))

	// 10. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, httpDelivery.Handlers{
		Health:     handler.NewHealthHandler(client, cachePinger),
		Map:        handler.NewMapHandler(mapController, catalogUC, surface, log),
		Bridge:     handler.NewBridgeHandler(host, log),
		Catalog:    handler.NewCatalogHandler(catalogUC, log),
		Session:    handler.NewSessionHandler(sessionUC, log),
		Filter:     handler.NewFilterHandler(filterUC, log),
		Submission: handler.NewSubmissionHandler(submissionUC, log),
	}, m, log)

	log.Info("HTTP server initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Restore state before the shell connects
	startCtx, startCancel := context.WithTimeout(ctx, cfg.API.RequestTimeout)
	if err := sessionUC.Restore(startCtx); err != nil {
		log.Warn("Failed to restore session", zap.Error(err))
	}
	if err := filterUC.LoadOptions(startCtx); err != nil {
		log.Warn("Failed to load filter options", zap.Error(err))
	}
	startCancel()

	mapController.Start(ctx)

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 12. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully...")

	// открытые SSE-потоки держат соединения, пока хост их не отпустит
	host.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	cancel()
	if err := workerManager.Stop(); err != nil {
		log.Error("Worker manager stop error", zap.Error(err))
	}
	mapController.Wait()

	if err := store.Close(); err != nil {
		log.Error("Failed to close session storage", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Stopped")
}
