package models

import (
	"time"
)

// DigitalAccessToken is the unlock credential for one (order, digital product)
// pair. At most one row exists per pair, enforced by the composite unique
// index; rows are only created once the owning order is PAID.
type DigitalAccessToken struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"not null;uniqueIndex:idx_token_order_product" json:"order_id"`
	Order     Order   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_token_order_product" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Token     string  `gorm:"size:64;uniqueIndex;not null" json:"token"`
	Used      bool    `gorm:"not null;default:false" json:"used"` // present in the schema, not enforced anywhere yet

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the DigitalAccessToken model
func (DigitalAccessToken) TableName() string {
	return "digital_access_tokens"
}
