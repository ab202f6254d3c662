package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/mamadbah2/geotree/internal/carbon"
	"github.com/mamadbah2/geotree/internal/config"
	"github.com/mamadbah2/geotree/internal/metrics"
	"github.com/mamadbah2/geotree/internal/repository/mongodb"
	"github.com/mamadbah2/geotree/internal/repository/sheets"
	"github.com/mamadbah2/geotree/internal/scheduler"
	"github.com/mamadbah2/geotree/internal/server/handlers"
	"github.com/mamadbah2/geotree/internal/server/router"
	"github.com/mamadbah2/geotree/internal/service/footprint"
	plantationsvc "github.com/mamadbah2/geotree/internal/service/plantation"
	reportingsvc "github.com/mamadbah2/geotree/internal/service/reporting"
	"github.com/mamadbah2/geotree/pkg/clients/webhook"
	"github.com/mamadbah2/geotree/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	store, err := mongodb.NewStore(startupCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName, baseLogger.Named("repo.mongodb"))
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	if err := store.EnsureIndexes(startupCtx); err != nil {
		baseLogger.Fatal("failed to ensure mongodb indexes", zap.Error(err))
	}

	recommender, err := carbon.LoadRecommender(cfg.Carbon.SpeciesConfigPath)
	if err != nil {
		baseLogger.Fatal("failed to load species configuration", zap.Error(err), zap.String("path", cfg.Carbon.SpeciesConfigPath))
	}

	var exporter reportingsvc.Exporter
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(startupCtx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		exporter = sheets.NewReportExporter(sheetsRepo)
		baseLogger.Info("google sheets report export enabled")
	}

	var notifier webhook.Client
	if cfg.Webhook.Enabled() {
		notifier = webhook.NewClient(cfg.Webhook)
		baseLogger.Info("report webhook enabled")
	} else {
		baseLogger.Warn("report webhook url missing, daily reports are stored only")
	}

	appMetrics := metrics.MustNewMetrics(prometheus.DefaultRegisterer)

	carbonSvc, err := footprint.NewService(store, recommender, appMetrics, baseLogger.Named("svc.carbon"))
	if err != nil {
		baseLogger.Fatal("failed to init carbon service", zap.Error(err))
	}
	plantationSvc := plantationsvc.NewService(store, appMetrics, baseLogger.Named("svc.plantation"))
	reportingSvc := reportingsvc.NewService(store, exporter, appMetrics, cfg.Reporting.Location(), baseLogger.Named("svc.reporting"))

	engine := router.New(router.Handlers{
		Carbon:     handlers.NewCarbonHandler(carbonSvc, baseLogger.Named("handlers.carbon")),
		Plantation: handlers.NewPlantationHandler(plantationSvc, baseLogger.Named("handlers.plantation")),
		Health:     handlers.NewHealthHandler(store, baseLogger.Named("handlers.health")),
	}, router.Options{
		Server:   cfg.Server,
		Metrics:  appMetrics,
		Gatherer: prometheus.DefaultGatherer,
		Logger:   baseLogger.Named("router"),
	})

	sched := scheduler.NewScheduler(cfg.Reporting, reportingSvc, notifier, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
