package utils

import (
	"log"
	"time"

	"mopay/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitializeOTPCleanupScheduler sets up the daily purge of stale OTP rows.
func InitializeOTPCleanupScheduler(db *gorm.DB) *cron.Cron {
	log.Println("[OTP-SCHEDULER] Initializing OTP cleanup scheduler...")

	c := cron.New()

	// Run daily at 2 AM
	c.AddFunc("0 2 * * *", func() {
		log.Println("[OTP-SCHEDULER] Running daily OTP cleanup...")
		CleanupExpiredOTPs(db)
	})

	c.Start()
	log.Println("[OTP-SCHEDULER] OTP cleanup scheduler started - runs daily at 2 AM")
	return c
}

// CleanupExpiredOTPs soft-deletes OTP codes that are used or past expiry.
func CleanupExpiredOTPs(db *gorm.DB) {
	res := db.Model(&models.OTP{}).
		Where("is_deleted = false").
		Where("is_used = true OR expires_at < ?", time.Now()).
		Update("is_deleted", true)
	if res.Error != nil {
		log.Printf("[OTP-SCHEDULER] Error cleaning up OTP rows: %v", res.Error)
		return
	}

	log.Printf("[OTP-SCHEDULER] Cleaned up %d stale OTP rows", res.RowsAffected)
}
