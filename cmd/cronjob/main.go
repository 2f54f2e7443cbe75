package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"agrorent-backend/internal/config"
	"agrorent-backend/internal/identity"
	"agrorent-backend/internal/jobs"
	"agrorent-backend/internal/logger"
	"agrorent-backend/internal/repository/postgres"
	"agrorent-backend/internal/scheduler"
	"agrorent-backend/internal/service"
	"agrorent-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'pending-reminders', 'reconcile-counts', 'cleanup-media', 'snapshot', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting AgroRent Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	ctx := context.Background()

	// Initialize Storage Service
	var storageService storage.StorageInterface
	if cfg.Storage.Type == "" || cfg.Storage.Type == "mock" {
		mockStorage, err := storage.NewMockStorageService(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize mock storage", "error", err)
			log.Fatalf("Failed to initialize mock storage: %v", err)
		}
		storageService = mockStorage
	} else {
		app, err := identity.NewFirebaseApp(ctx, cfg.Identity.CredentialsFile, cfg.Identity.ProjectID, cfg.Storage.Bucket)
		if err != nil {
			logger.Error("Failed to initialize Firebase app for storage", "error", err)
			log.Fatalf("Failed to initialize Firebase app for storage: %v", err)
		}
		gcsStorage, err := storage.NewGCSStorageService(ctx, app, cfg.Storage.Bucket)
		if err != nil {
			logger.Error("Failed to initialize GCS storage", "error", err)
			log.Fatalf("Failed to initialize GCS storage: %v", err)
		}
		storageService = gcsStorage
	}

	// Initialize Email Service
	var emailSvc service.EmailService
	if cfg.Email.APIKey != "" {
		emailSvc = service.NewSendGridEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)
	} else {
		logger.Warn("No SendGrid API key configured, emails are disabled")
		emailSvc = service.NewNoopEmailService()
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(db, store, emailSvc, storageService, cfg)

	// Handle run-once mode
	if *runOnce != "" {
		runJobOnce(jobRunner, *runOnce)
		return
	}

	// Start the scheduler
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Shutting down", "signal", sig.String())

	sched.Stop()
}

func runJobOnce(jr *jobs.JobRunner, name string) {
	switch name {
	case "pending-reminders":
		jr.SendPendingRentalReminders()
	case "reconcile-counts":
		jr.ReconcileRentalCounts()
	case "cleanup-media":
		jr.CleanupUnreferencedMedia()
	case "snapshot":
		jr.LogDashboardSnapshot()
	case "all":
		jr.RunAll()
	default:
		logger.Error("Unknown job name", "job", name)
		os.Exit(1)
	}
}
