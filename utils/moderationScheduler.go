package utils

import (
	"elearn/config"
	"elearn/database"
	courseModels "elearn/models/course"
	"log"
	"strings"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// InitializeModerationScheduler sets up the daily pending-review digest
func InitializeModerationScheduler() {
	log.Println("[MODERATION-SCHEDULER] Initializing moderation scheduler...")

	c := cron.New()

	// Run daily at 9 AM to remind admins about the review queue
	c.AddFunc("0 9 * * *", func() {
		log.Println("[MODERATION-SCHEDULER] Running daily pending-review check...")
		SendModerationQueueDigest()
	})

	c.Start()
	log.Println("[MODERATION-SCHEDULER] Moderation scheduler started - runs daily at 9 AM")
}

// SendModerationQueueDigest emails admins the courses that were submitted
// before today and are still waiting for review
func SendModerationQueueDigest() {
	db := database.Database.Db
	startOfDay := now.BeginningOfDay()

	var pending []courseModels.Course
	if err := db.
		Where("moderation_status = ? AND is_deleted = ?", courseModels.ModerationPending, false).
		Where("updated_at < ?", startOfDay).
		Order("updated_at asc").
		Find(&pending).Error; err != nil {
		log.Printf("[MODERATION-SCHEDULER] Error fetching pending courses: %v", err)
		return
	}

	if len(pending) == 0 {
		log.Println("[MODERATION-SCHEDULER] No courses pending review")
		return
	}

	titles := make([]string, 0, len(pending))
	for _, crs := range pending {
		titles = append(titles, crs.Title)
	}

	recipients := []string{}
	for _, addr := range strings.Split(config.AppConfig.AdminEmails, ",") {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			recipients = append(recipients, trimmed)
		}
	}
	if len(recipients) == 0 {
		log.Printf("[MODERATION-SCHEDULER] %d courses pending but no ADMIN_EMAILS configured", len(pending))
		return
	}

	if err := SendPendingModerationDigest(recipients, titles); err != nil {
		log.Printf("[MODERATION-SCHEDULER] Error sending digest: %v", err)
		return
	}
	log.Printf("[MODERATION-SCHEDULER] Digest sent for %d pending courses", len(pending))
}
