package jobs

import (
	"database/sql"

	"agrorent-backend/internal/config"
	"agrorent-backend/internal/logger"
	"agrorent-backend/internal/repository/postgres"
	"agrorent-backend/internal/service"
	"agrorent-backend/internal/storage"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db      *sql.DB
	store   *postgres.Store
	email   service.EmailService
	storage storage.StorageInterface
	config  *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, store *postgres.Store, email service.EmailService, objStore storage.StorageInterface, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:      db,
		store:   store,
		email:   email,
		storage: objStore,
		config:  cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.SendPendingRentalReminders()
	jr.ReconcileRentalCounts()
	jr.CleanupUnreferencedMedia()
	jr.LogDashboardSnapshot()
}
