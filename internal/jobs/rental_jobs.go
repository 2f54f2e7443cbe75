package jobs

import (
	"context"
	"time"

	"agrorent-backend/internal/logger"
)

// SendPendingRentalReminders emails owners about rental requests that have
// been sitting undecided past the configured age.
func (jr *JobRunner) SendPendingRentalReminders() {
	jr.runWithRecovery("SendPendingRentalReminders", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-time.Duration(jr.config.Scheduler.ReminderAgeHours) * time.Hour)

		pending, err := jr.store.PendingOlderThan(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to load pending rentals", "error", err)
			return
		}

		sent := 0
		for _, item := range pending {
			owner, err := jr.store.ProfileRepository.GetByID(ctx, item.OwnerID)
			if err != nil {
				logger.Warn("Owner lookup failed for reminder", "rental_id", item.ID, "error", err)
				continue
			}
			if err := jr.email.SendPendingRequestReminder(ctx, owner.Email, owner.DisplayName(),
				item.CounterpartyName, item.EquipmentName, item.CreatedAt); err != nil {
				logger.Warn("Reminder email failed", "rental_id", item.ID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Pending rental reminders sent", "pending", len(pending), "sent", sent)
	})
}

// ReconcileRentalCounts re-derives equipment rental_count from the approved
// rentals table. The counter is bumped inline on approval; this repairs any
// drift from crashed requests.
func (jr *JobRunner) ReconcileRentalCounts() {
	jr.runWithRecovery("ReconcileRentalCounts", func() {
		ctx := context.Background()

		query := `
			UPDATE equipment e
			SET rental_count = sub.cnt
			FROM (
				SELECT equipment_id, count(*) AS cnt
				FROM rentals
				WHERE status = 'approved'
				GROUP BY equipment_id
			) AS sub
			WHERE e.id = sub.equipment_id
			  AND e.rental_count IS DISTINCT FROM sub.cnt
		`
		result, err := jr.db.ExecContext(ctx, query)
		if err != nil {
			logger.Error("Failed to reconcile rental counts", "error", err)
			return
		}
		updated, _ := result.RowsAffected()

		// Equipment with no approved rentals at all.
		zeroQuery := `
			UPDATE equipment e
			SET rental_count = 0
			WHERE rental_count <> 0
			  AND NOT EXISTS (
				SELECT 1 FROM rentals r
				WHERE r.equipment_id = e.id AND r.status = 'approved'
			  )
		`
		zeroResult, err := jr.db.ExecContext(ctx, zeroQuery)
		if err != nil {
			logger.Error("Failed to zero stale rental counts", "error", err)
			return
		}
		zeroed, _ := zeroResult.RowsAffected()

		logger.Info("Rental counts reconciled", "updated", updated, "zeroed", zeroed)
	})
}
