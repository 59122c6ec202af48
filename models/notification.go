package models

import (
	"time"
)

// NotificationKind is the closed set of admin notification types
type NotificationKind string

const (
	NotificationNewOrder               NotificationKind = "NEW_ORDER"
	NotificationPaymentReceived        NotificationKind = "PAYMENT_RECEIVED"
	NotificationContactSubmission      NotificationKind = "CONTACT_SUBMISSION"
	NotificationNewsletterSubscription NotificationKind = "NEWSLETTER_SUBSCRIPTION"
)

// Notification is one entry in the admin notification feed
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Type      NotificationKind `gorm:"size:50;not null" json:"type"`
	Title     string           `gorm:"size:200;not null" json:"title"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	Link      string           `gorm:"size:200" json:"link"`
	Read      bool             `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
