package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "agrorent-backend/internal/api/http"
	"agrorent-backend/internal/config"
	"agrorent-backend/internal/identity"
	"agrorent-backend/internal/logger"
	"agrorent-backend/internal/repository/postgres"
	"agrorent-backend/internal/security"
	"agrorent-backend/internal/service"
	"agrorent-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting AgroRent Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
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

	// Initialize Identity Provider
	var provider identity.Provider
	var localProvider *identity.LocalProvider
	if cfg.Identity.Type == "firebase" {
		logger.Info("Using Firebase identity provider", "project_id", cfg.Identity.ProjectID)
		app, err := identity.NewFirebaseApp(ctx, cfg.Identity.CredentialsFile, cfg.Identity.ProjectID, cfg.Storage.Bucket)
		if err != nil {
			logger.Error("Failed to initialize Firebase app", "error", err)
			log.Fatalf("Failed to initialize Firebase app: %v", err)
		}
		firebaseProvider, err := identity.NewFirebaseProvider(ctx, app)
		if err != nil {
			logger.Error("Failed to initialize Firebase provider", "error", err)
			log.Fatalf("Failed to initialize Firebase provider: %v", err)
		}
		provider = firebaseProvider
	} else {
		logger.Info("Using local identity provider")
		tokenManager := security.NewTokenManager(cfg.Identity.JWTSecret, time.Duration(cfg.Identity.SessionExpiryMinutes)*time.Minute)
		localProvider = identity.NewLocalProvider(store.ProfileRepository, tokenManager)
		provider = localProvider
	}

	// Initialize Storage Service
	var storageService storage.StorageInterface
	var mockStorage *storage.MockStorageService
	if cfg.Storage.Type == "" || cfg.Storage.Type == "mock" {
		logger.Info("Using mock storage (local filesystem)", "upload_dir", cfg.Storage.UploadDir)
		mockStorage, err = storage.NewMockStorageService(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize mock storage", "error", err)
			log.Fatalf("Failed to initialize mock storage: %v", err)
		}
		storageService = mockStorage
	} else {
		logger.Info("Using Google Cloud Storage", "bucket", cfg.Storage.Bucket)
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

	// Initialize Services
	catalogSvc := service.NewCatalogService(store.EquipmentRepository, store.ProfileRepository, store.ReviewRepository, storageService)
	reviewSvc := service.NewReviewService(store.ReviewRepository, store.EquipmentRepository)
	rentalSvc := service.NewRentalService(store.RentalRepository, store.EquipmentRepository, store.ProfileRepository, emailSvc)
	dashboardSvc := service.NewDashboardService(store.ProfileRepository, store.EquipmentRepository, store.RentalRepository, store.ReviewRepository)
	profileSvc := service.NewProfileService(store.ProfileRepository, provider, storageService)
	contactSvc := service.NewContactService(store.InquiryRepository, store.ProfileRepository, emailSvc, cfg.Email.AdminEmail)

	// Build the router
	allowedTypes := make(map[string]bool, len(cfg.Storage.AllowedTypes))
	for _, t := range cfg.Storage.AllowedTypes {
		allowedTypes[t] = true
	}
	router := httpapi.NewRouter(httpapi.RouterDeps{
		CatalogSvc:      catalogSvc,
		ReviewSvc:       reviewSvc,
		RentalSvc:       rentalSvc,
		DashboardSvc:    dashboardSvc,
		ProfileSvc:      profileSvc,
		ContactSvc:      contactSvc,
		Provider:        provider,
		LocalProvider:   localProvider,
		MockStorage:     mockStorage,
		DefaultPageSize: cfg.Catalog.DefaultPageSize,
		Uploads: httpapi.UploadPolicy{
			MaxBytes:     cfg.Storage.MaxFileSizeMB << 20,
			AllowedTypes: allowedTypes,
		},
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Shutting down", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
