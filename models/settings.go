package models

import (
	"time"
)

// SiteSettings is the singleton row holding site-wide configuration.
// The first row is used everywhere; one is created on demand.
type SiteSettings struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	SiteTitle string `gorm:"size:120;not null;default:'Neesté'" json:"site_title"`
	Tagline   string `gorm:"size:255" json:"tagline"`

	HeroTitle    string `gorm:"size:255" json:"hero_title"`
	HeroSubtitle string `gorm:"size:255" json:"hero_subtitle"`
	Address      string `gorm:"size:255" json:"address"`
	Phone        string `gorm:"size:50" json:"phone"`
	Email        string `json:"email"`

	ContactDescription string `gorm:"type:text" json:"contact_description"`
	FacebookURL        string `json:"facebook_url"`
	TwitterURL         string `json:"twitter_url"`
	InstagramURL       string `json:"instagram_url"`

	VisitTrackingEnabled bool `gorm:"not null;default:false" json:"visit_tracking_enabled"`

	// SMTP configuration for newsletter delivery
	EmailHost         string `gorm:"size:100;default:'smtp.gmail.com'" json:"email_host"`
	EmailPort         int    `gorm:"default:587" json:"email_port"`
	EmailUseTLS       bool   `gorm:"default:true" json:"email_use_tls"`
	EmailHostUser     string `json:"email_host_user"`
	EmailHostPassword string `gorm:"size:200" json:"email_host_password"`
	EmailFromEmail    string `json:"email_from_email"`
	EmailFromName     string `gorm:"size:100;default:'Neesté'" json:"email_from_name"`

	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the SiteSettings model
func (SiteSettings) TableName() string {
	return "site_settings"
}

// SiteVisit tracks site visits per day
type SiteVisit struct {
	ID    uint      `gorm:"primaryKey" json:"id"`
	Date  time.Time `gorm:"type:date;uniqueIndex;not null" json:"date"`
	Count uint      `gorm:"not null;default:0" json:"count"`
}

// TableName specifies the table name for the SiteVisit model
func (SiteVisit) TableName() string {
	return "site_visits"
}
