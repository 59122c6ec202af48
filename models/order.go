package models

import (
	"time"
)

// Order statuses. The lifecycle is one-directional: CREATED -> PAID.
const (
	OrderStatusCreated = "CREATED"
	OrderStatusPaid    = "PAID"
)

// Order represents one purchase transaction
type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Reference   string `gorm:"size:20;uniqueIndex;not null" json:"reference"` // human-readable, generated at creation
	FullName    string `gorm:"not null" json:"full_name"`
	Phone       string `gorm:"size:30;not null" json:"phone"`
	Email       string `json:"email"`
	Address     string `gorm:"type:text" json:"address"`
	TotalAmount int64  `gorm:"not null;default:0" json:"total_amount"` // sum of items, computed server-side
	Status      string `gorm:"size:20;not null;default:'CREATED'" json:"status"`

	MomoReferenceID            string `gorm:"size:64;index" json:"momo_reference_id"`
	MomoStatus                 string `gorm:"size:32" json:"momo_status"` // provider status, mirrored verbatim
	MomoFinancialTransactionID string `gorm:"size:64" json:"momo_financial_transaction_id"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// IsPaid reports whether the order has reached its terminal status
func (o *Order) IsPaid() bool {
	return o.Status == OrderStatusPaid
}

// OrderItem is a priced line in an order. The unit price is frozen at attach
// time so later product price changes do not affect existing orders.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product"`
	Qty       int     `gorm:"not null;default:1;check:qty > 0" json:"qty"`
	UnitPrice int64   `gorm:"not null" json:"unit_price"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal returns the line total for this item
func (i *OrderItem) Subtotal() int64 {
	return i.UnitPrice * int64(i.Qty)
}
