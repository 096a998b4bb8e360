package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/models"
	"gorm.io/gorm"
)

// PurgeBefore deletes system logs older than cutoff.
func PurgeBefore(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}

// StartCleanup runs a daily goroutine that keeps retentionDays of system logs.
func StartCleanup(db *gorm.DB, retentionDays int, done <-chan struct{}) {
	if retentionDays <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deleted, err := PurgeBefore(db, time.Now().AddDate(0, 0, -retentionDays))
				if err != nil {
					slog.Warn("log cleanup failed", "error", err)
				} else if deleted > 0 {
					slog.Info("log cleanup completed", "deleted", deleted)
				}
			case <-done:
				return
			}
		}
	}()
}
