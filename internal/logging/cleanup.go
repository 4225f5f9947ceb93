package logging

import (
	"log/slog"
	"time"

	"github.com/anselmoparente/VemProFut/internal/models"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

// Purge deletes system logs older than cutoff.
func Purge(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}

// StartCleanup purges logs older than retention once a day until done closes.
func StartCleanup(db *gorm.DB, clock clockwork.Clock, retention time.Duration, done <-chan struct{}) {
	go func() {
		ticker := clock.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.Chan():
				deleted, err := Purge(db, clock.Now().Add(-retention))
				if err != nil {
					slog.Error("log cleanup failed", "error", err)
				} else if deleted > 0 {
					slog.Info("log cleanup completed", "deleted", deleted)
				}
			case <-done:
				return
			}
		}
	}()
}
