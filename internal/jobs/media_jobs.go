package jobs

import (
	"context"
	"time"

	"agrorent-backend/internal/logger"
)

// CleanupUnreferencedMedia deletes stored objects that no equipment row or
// profile avatar points at anymore. Objects younger than the retention
// window are kept, so in-flight uploads survive.
func (jr *JobRunner) CleanupUnreferencedMedia() {
	jr.runWithRecovery("CleanupUnreferencedMedia", func() {
		ctx := context.Background()

		imageURLs, err := jr.store.ImageURLs(ctx)
		if err != nil {
			logger.Error("Failed to collect equipment image urls", "error", err)
			return
		}
		avatarURLs, err := jr.store.AvatarURLs(ctx)
		if err != nil {
			logger.Error("Failed to collect avatar urls", "error", err)
			return
		}

		referenced := make(map[string]bool, len(imageURLs)+len(avatarURLs))
		for _, u := range append(imageURLs, avatarURLs...) {
			if key := jr.storage.KeyFromURL(u); key != "" {
				referenced[key] = true
			}
		}

		olderThan := time.Now().Add(-time.Duration(jr.config.Scheduler.MediaRetentionHours) * time.Hour)
		deleted, err := jr.storage.DeleteUnreferenced(ctx, olderThan, referenced)
		if err != nil {
			logger.Error("Media cleanup failed", "error", err)
			return
		}
		logger.Info("Unreferenced media removed", "referenced", len(referenced), "deleted", deleted)
	})
}
