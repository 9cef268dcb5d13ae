package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/vytor/trainerdesk/internal/api"
	"github.com/vytor/trainerdesk/internal/config"
	"github.com/vytor/trainerdesk/internal/db"
	"github.com/vytor/trainerdesk/internal/docstore"
	"github.com/vytor/trainerdesk/internal/i18n"
	"github.com/vytor/trainerdesk/internal/logger"
	"github.com/vytor/trainerdesk/internal/metrics"
	"github.com/vytor/trainerdesk/internal/progress"
	"github.com/vytor/trainerdesk/internal/repository/documents"
	"github.com/vytor/trainerdesk/internal/services"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("TrainerDesk Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("default_language=%s", cfg.DefaultLanguage)
	log.Debug("timezone=%s", cfg.Timezone)
	log.Debug("chart_label_layout=%s", cfg.ChartLabelLayout)
	log.Debug("request_timeout_seconds=%d", cfg.RequestTimeout)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	catalog, err := i18n.Load(cfg.DefaultLanguage)
	if err != nil {
		log.Error("failed to load message catalogs: %v", err)
		os.Exit(1)
	}
	log.Debug("languages=%v", catalog.Languages())

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsManager := metrics.NewManager("trainerdesk", "server", registry)

	// Initialize repositories
	store := docstore.NewSQLiteStore(database.DB)
	trainerRepo := documents.NewTrainerRepository(store)
	clientRepo := documents.NewClientRepository(store)
	templateRepo := documents.NewTemplateRepository(store)
	progressRepo := documents.NewProgressRepository(store)
	scheduleRepo := documents.NewScheduleRepository(store)
	folderRepo := documents.NewFolderRepository(store)
	videoRepo := documents.NewVideoRepository(store)

	loc := cfg.Location()
	builder := progress.NewBuilder(cfg.ChartLabelLayout, loc)

	srv := &api.Server{
		TrainerService:  services.NewTrainerService(trainerRepo),
		ClientService:   services.NewClientService(clientRepo),
		TemplateService: services.NewTemplateService(templateRepo),
		ProgressService: services.NewProgressService(clientRepo, templateRepo, progressRepo, builder, metricsManager),
		ScheduleService: services.NewScheduleService(scheduleRepo, clientRepo, loc),
		LibraryService:  services.NewLibraryService(folderRepo, videoRepo),
		Catalog:         catalog,
		Metrics:         metricsManager,
		Gatherer:        registry,
		DB:              database,
		Location:        loc,
		RequestTimeout:  time.Duration(cfg.RequestTimeout) * time.Second,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("TrainerDesk Server Stopped")
	log.Info("===========================================")
}
