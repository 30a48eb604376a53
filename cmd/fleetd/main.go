package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"fleet-dashboard-backend/config"
	"fleet-dashboard-backend/internal/api"
	"fleet-dashboard-backend/internal/db"
	"fleet-dashboard-backend/internal/fixture"
	"fleet-dashboard-backend/internal/loader"
	"fleet-dashboard-backend/internal/logging"
	"fleet-dashboard-backend/internal/metrics"
	"fleet-dashboard-backend/internal/store"
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	logger := logging.NewLogger(cfg.Log.Level, cfg.Log.File)
	logger.Infof("configuration loaded successfully from %s", configPath)

	metrics.Init(prometheus.DefaultRegisterer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source, err := openSource(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to open fleet data source: %v", err)
	}

	loaderSvc := loader.NewService(&cfg.Data, source, logger.WithField("component", "loader"))

	router := api.NewRouter(cfg, loaderSvc, logger.WithField("component", "http"))
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go loaderSvc.Run(ctx)

	go func() {
		logger.Infof("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info("Shutdown signal received, stopping services...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Info("Server gracefully stopped")
}

// openSource serves the fixtures directly when no database is configured.
// Otherwise the database is the source, optionally seeded from the fixtures first.
func openSource(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (loader.Source, error) {
	fixtures := fixture.NewDir(cfg.Data.FixturesDir)
	if cfg.Database.DSN == "" {
		logger.Infof("no database configured, serving fixtures from %s", cfg.Data.FixturesDir)
		return fixtures, nil
	}

	gormDB, err := db.Init(&cfg.Database, logger.WithField("component", "db"))
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	logger.Info("database initialized successfully")

	appStore := store.NewGormStore(gormDB)
	if cfg.Database.SeedFromFixtures {
		tables, err := fixtures.LoadTables(ctx)
		if err != nil {
			return nil, fmt.Errorf("load seed fixtures: %w", err)
		}
		if err := appStore.ReplaceTables(ctx, tables); err != nil {
			return nil, fmt.Errorf("seed database: %w", err)
		}
		logger.WithField("equipment", len(tables.Equipment)).Info("database seeded from fixtures")
	}
	return appStore, nil
}
