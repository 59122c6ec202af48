package models

import (
	"time"
)

// Product types
const (
	ProductTypePhysical = "PHYSICAL"
	ProductTypeDigital  = "DIGITAL"
)

// Product represents a catalog entry, either physical or digital.
// Digital products carry an S3 key for the downloadable file.
type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       int64   `gorm:"not null" json:"price"` // zero-decimal currency
	Currency    string  `gorm:"not null;default:'UGX'" json:"currency"`
	Type        string  `gorm:"not null" json:"type"` // PHYSICAL or DIGITAL
	FileKey     *string `json:"file_key,omitempty"`   // S3 key for the digital file
	ImageKey    *string `json:"image_key,omitempty"`  // S3 key for the product image
	ImageURL    *string `gorm:"-" json:"image_url,omitempty"` // computed field, presigned URL for image
	IsActive    bool    `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// IsDigital reports whether the product has a downloadable file type
func (p *Product) IsDigital() bool {
	return p.Type == ProductTypeDigital
}
