package models

import (
	"time"
)

// NewsletterSubscriber is one subscribed email address
type NewsletterSubscriber struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the NewsletterSubscriber model
func (NewsletterSubscriber) TableName() string {
	return "newsletter_subscribers"
}

// EmailCampaign records one sent newsletter campaign
type EmailCampaign struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Subject         string    `gorm:"size:200;not null" json:"subject"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	RecipientsCount int       `gorm:"not null;default:0" json:"recipients_count"`
	SentAt          time.Time `gorm:"autoCreateTime" json:"sent_at"`
}

// TableName specifies the table name for the EmailCampaign model
func (EmailCampaign) TableName() string {
	return "email_campaigns"
}
