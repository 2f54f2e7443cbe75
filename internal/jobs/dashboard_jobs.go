package jobs

import (
	"context"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/logger"
)

// LogDashboardSnapshot writes the platform counters to the log once per run,
// giving operators a daily trail without a metrics stack.
func (jr *JobRunner) LogDashboardSnapshot() {
	jr.runWithRecovery("LogDashboardSnapshot", func() {
		ctx := context.Background()

		farmers, err := jr.store.CountByRole(ctx, domain.RoleFarmer)
		if err != nil {
			logger.Error("Failed to count farmers", "error", err)
			return
		}
		lenders, err := jr.store.CountByRole(ctx, domain.RoleLender)
		if err != nil {
			logger.Error("Failed to count lenders", "error", err)
			return
		}

		var pending, approved int64
		row := jr.db.QueryRowContext(ctx, `SELECT count(*) FILTER (WHERE status = 'pending'), count(*) FILTER (WHERE status = 'approved') FROM rentals`)
		if err := row.Scan(&pending, &approved); err != nil {
			logger.Error("Failed to count rentals", "error", err)
			return
		}

		logger.Info("Dashboard snapshot",
			"accounts", farmers+lenders,
			"farmers", farmers,
			"lenders", lenders,
			"pending_rentals", pending,
			"approved_rentals", approved,
		)
	})
}
