package services

import (
	"log"

	"github.com/neeste/neeste-api/models"
	"gorm.io/gorm"
)

// EmitNotification appends one unread record to the admin notification feed.
// It never returns an error: a failure to record a notification must not
// block the business operation that triggered it.
func EmitNotification(db *gorm.DB, kind models.NotificationKind, title, message, link string) {
	notification := models.Notification{
		Type:    kind,
		Title:   title,
		Message: message,
		Link:    link,
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("warning: failed to record %s notification: %v", kind, err)
	}
}
