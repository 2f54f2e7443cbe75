package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Identity  IdentityConfig  `yaml:"identity"`
	Email     EmailConfig     `yaml:"email"`
	Storage   StorageConfig   `yaml:"storage"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// IdentityConfig selects and configures the identity provider
type IdentityConfig struct {
	Type                 string `yaml:"type"` // "local" or "firebase"
	JWTSecret            string `yaml:"jwt_secret"`
	SessionExpiryMinutes int    `yaml:"session_expiry_minutes"`
	CredentialsFile      string `yaml:"credentials_file"`
	ProjectID            string `yaml:"project_id"`
}

// EmailConfig contains SendGrid settings
type EmailConfig struct {
	APIKey     string `yaml:"api_key"`
	From       string `yaml:"from"`
	FromName   string `yaml:"from_name"`
	AdminEmail string `yaml:"admin_email"` // contact inquiries land here
}

// StorageConfig contains object storage settings
type StorageConfig struct {
	Type          string   `yaml:"type"`       // "mock" or "gcs"
	UploadDir     string   `yaml:"upload_dir"` // for mock storage
	BaseURL       string   `yaml:"base_url"`   // server base URL for mock URLs
	Bucket        string   `yaml:"bucket"`     // for gcs storage
	MaxFileSizeMB int64    `yaml:"max_file_size_mb"`
	AllowedTypes  []string `yaml:"allowed_types"`
}

// CatalogConfig contains listing defaults
type CatalogConfig struct {
	DefaultPageSize int32 `yaml:"default_page_size"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig holds the cron expressions of the background jobs
type SchedulerConfig struct {
	PendingRentalReminders string `yaml:"pending_rental_reminders"`
	ReconcileRentalCounts  string `yaml:"reconcile_rental_counts"`
	CleanupMedia           string `yaml:"cleanup_media"`
	DashboardSnapshot      string `yaml:"dashboard_snapshot"`
	ReminderAgeHours       int    `yaml:"reminder_age_hours"`
	MediaRetentionHours    int    `yaml:"media_retention_hours"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Identity
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.Identity.JWTSecret = val
	}
	if val := os.Getenv("FIREBASE_CREDENTIALS_FILE"); val != "" {
		c.Identity.CredentialsFile = val
	}
	if val := os.Getenv("FIREBASE_PROJECT_ID"); val != "" {
		c.Identity.ProjectID = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.APIKey = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.From = val
	}
	if val := os.Getenv("ADMIN_EMAIL"); val != "" {
		c.Email.AdminEmail = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Storage
	if val := os.Getenv("UPLOAD_DIR"); val != "" {
		c.Storage.UploadDir = val
	}
	if val := os.Getenv("STORAGE_BUCKET"); val != "" {
		c.Storage.Bucket = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	switch c.Identity.Type {
	case "", "local":
		c.Identity.Type = "local"
		if c.Identity.JWTSecret == "" {
			return fmt.Errorf("JWT secret is required for local identity")
		}
		if len(c.Identity.JWTSecret) < 32 {
			return fmt.Errorf("JWT secret must be at least 32 characters")
		}
	case "firebase":
		if c.Identity.ProjectID == "" {
			return fmt.Errorf("firebase project id is required")
		}
	default:
		return fmt.Errorf("unknown identity type: %s", c.Identity.Type)
	}
	if c.Identity.SessionExpiryMinutes == 0 {
		c.Identity.SessionExpiryMinutes = 60
	}

	switch c.Storage.Type {
	case "", "mock":
		c.Storage.Type = "mock"
		if c.Storage.UploadDir == "" {
			return fmt.Errorf("upload directory is required for mock storage")
		}
	case "gcs":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage bucket is required for gcs storage")
		}
	default:
		return fmt.Errorf("unknown storage type: %s", c.Storage.Type)
	}
	if c.Storage.MaxFileSizeMB == 0 {
		c.Storage.MaxFileSizeMB = 10
	}
	if len(c.Storage.AllowedTypes) == 0 {
		c.Storage.AllowedTypes = []string{"image/jpeg", "image/png", "image/gif"}
	}

	if c.Catalog.DefaultPageSize == 0 {
		c.Catalog.DefaultPageSize = 4
	}

	// Scheduler defaults
	if c.Scheduler.PendingRentalReminders == "" {
		c.Scheduler.PendingRentalReminders = "0 0 9 * * *" // 9 AM UTC
	}
	if c.Scheduler.ReconcileRentalCounts == "" {
		c.Scheduler.ReconcileRentalCounts = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.CleanupMedia == "" {
		c.Scheduler.CleanupMedia = "0 30 2 * * *" // 2:30 AM UTC
	}
	if c.Scheduler.DashboardSnapshot == "" {
		c.Scheduler.DashboardSnapshot = "0 0 * * * *" // hourly
	}
	if c.Scheduler.ReminderAgeHours == 0 {
		c.Scheduler.ReminderAgeHours = 48
	}
	if c.Scheduler.MediaRetentionHours == 0 {
		c.Scheduler.MediaRetentionHours = 24
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the host:port the HTTP server binds to
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
