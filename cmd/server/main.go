package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"logitrack/internal/app"
	"logitrack/internal/config"
	"logitrack/internal/handler"
	internalRedis "logitrack/internal/redis"
	"logitrack/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before the stores so we can instrument them).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			logrus.WithError(err).Error("failed to initialize New Relic")
		} else {
			logrus.WithField("app", cfg.NewRelic.AppName).Info("New Relic enabled")
		}
	}

	// Select the persistence backend once for the whole session: remote
	// PostgreSQL, or the local JSON store when it is unreachable.
	backend, err := app.OpenBackend(ctx, cfg, nrApp)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open a persistence backend")
	}
	defer backend.Close()
	if backend.Fallback {
		logrus.Warn("running on local storage; job data stays on this machine for this session")
	} else {
		logrus.Info("connected to PostgreSQL")
	}

	// Redis is optional: without it the site cache and idempotent
	// retries are skipped, nothing else changes.
	var redisClient *goredis.Client
	if cfg.Redis.Enabled {
		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			logrus.WithError(err).Warn("redis unavailable, continuing without cache")
			redisClient = nil
		} else {
			defer redisClient.Close()
			logrus.Info("connected to Redis")
		}
	}

	// Wire dependencies.
	server := wireServer(ctx, backend, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server error")
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Fatal("server forced to shutdown")
	}

	logrus.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(ctx context.Context, backend *app.Backend, redisClient *goredis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Initialize the site cache when Redis is up.
	var siteCache internalRedis.SiteCacheInterface
	if redisClient != nil {
		siteCache = internalRedis.NewSiteCache(redisClient)
	}

	// Initialize services.
	siteService := service.NewSiteService(backend.Sites, siteCache)
	jobService := service.NewJobService(backend.Jobs, backend.Sites, siteService)
	historyService := service.NewHistoryService(backend.Jobs)
	reportService := service.NewReportService(backend.Jobs)

	// Re-adopt an active job left over from a previous session.
	if err := jobService.Restore(ctx); err != nil {
		logrus.WithError(err).Warn("could not check for a leftover active job")
	}

	// Initialize handlers.
	siteHandler := handler.NewSiteHandler(siteService)
	jobHandler := handler.NewJobHandler(jobService, historyService, cfg.Tracker.Fuel)
	reportHandler := handler.NewReportHandler(reportService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		SiteHandler:     siteHandler,
		JobHandler:      jobHandler,
		ReportHandler:   reportHandler,
		RedisClient:     redisClient,
		NewRelicApp:     nrApp,
		FallbackStorage: backend.Fallback,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
