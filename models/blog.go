package models

import (
	"time"
)

// Blog post statuses
const (
	BlogStatusDraft     = "DRAFT"
	BlogStatusPublished = "PUBLISHED"
)

// BlogPost represents an article on the public blog
type BlogPost struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	Title            string  `gorm:"size:200;not null" json:"title"`
	Slug             string  `gorm:"size:250;uniqueIndex;not null" json:"slug"`
	FeaturedImageKey *string `json:"featured_image_key,omitempty"` // S3 key
	FeaturedImageURL *string `gorm:"-" json:"featured_image_url,omitempty"`
	Excerpt          string  `gorm:"size:300" json:"excerpt"`
	Content          string  `gorm:"type:text;not null" json:"content"`
	Status           string  `gorm:"size:20;not null;default:'DRAFT'" json:"status"`
	MetaDescription  string  `gorm:"size:160" json:"meta_description"`
	Views            uint    `gorm:"not null;default:0" json:"views"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at"`
}

// TableName specifies the table name for the BlogPost model
func (BlogPost) TableName() string {
	return "blog_posts"
}
