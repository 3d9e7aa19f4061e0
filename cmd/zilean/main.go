// Package main provides the entry point for the Zilean application.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/funkypenguin/zilean-go/internal/api"
	"github.com/funkypenguin/zilean-go/internal/config"
	"github.com/funkypenguin/zilean-go/internal/database"
	"github.com/funkypenguin/zilean-go/internal/logger"
	"github.com/funkypenguin/zilean-go/internal/service"
	"github.com/joho/godotenv"
)

// Build information - set by ldflags during build
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	var configPath = flag.String("config", "config.yaml", "path to configuration file")
	var dataDir = flag.String("data", "./data", "path to data directory")
	var showVersion = flag.Bool("version", false, "show version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("Zilean v%s (commit: %s, built: %s)\n", version, commit, date)
		return
	}

	// Load .env for local development; a production deployment sets
	// ZILEAN_* variables directly and this is a silent no-op.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath, *dataDir)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.New(cfg.Log)

	db, err := database.New(&cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", "error", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Failed to close database", "error", err)
		}
	}()

	if err := database.Migrate(db, appLogger); err != nil {
		appLogger.Fatal("Failed to run database migrations", "error", err)
	}

	services, err := service.NewContainer(db, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize services", "error", err)
	}

	appLogger.Info("Bootstrapping IMDb catalog")
	if err := services.BootstrapCatalog(context.Background()); err != nil {
		appLogger.Error("Initial catalog bootstrap failed, serving with an empty catalog", "error", err)
	}

	if err := services.IngestService.Start(context.Background()); err != nil {
		appLogger.Fatal("Failed to start background ingestion", "error", err)
	}
	defer func() {
		if err := services.IngestService.Stop(); err != nil {
			appLogger.Error("Failed to stop background ingestion", "error", err)
		}
	}()

	server := api.NewServer(cfg, services, appLogger)

	appLogger.Info("Starting Zilean",
		"version", version,
		"commit", commit,
		"built", date,
		"port", cfg.Server.Port)

	if err := server.Start(); err != nil {
		appLogger.Fatal("Failed to start server", "error", err)
	}
}
