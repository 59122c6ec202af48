package services

import (
	"errors"
	"fmt"

	"github.com/neeste/neeste-api/models"
	"github.com/neeste/neeste-api/utils"
	"gorm.io/gorm"
)

// ComputeOrderTotal sums unit_price * qty across the order's items.
// Deterministic and idempotent; amounts are integer-valued currency.
func ComputeOrderTotal(db *gorm.DB, orderID uint) (int64, error) {
	var items []models.OrderItem
	if err := db.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return 0, fmt.Errorf("failed to load order items: %w", err)
	}

	var total int64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total, nil
}

// MarkOrderPaid transitions an order from CREATED to PAID with a single
// conditional update, so two concurrent confirmations cannot both claim the
// transition. Returns whether this call performed it. On a successful
// transition the digital access tokens are issued before returning.
func MarkOrderPaid(db *gorm.DB, order *models.Order) (bool, error) {
	result := db.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, models.OrderStatusCreated).
		Update("status", models.OrderStatusPaid)
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark order paid: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Already PAID, or raced with another confirmation that won
		return false, nil
	}

	order.Status = models.OrderStatusPaid
	if err := EnsureDigitalTokens(db, order); err != nil {
		return true, err
	}
	return true, nil
}

// EnsureDigitalTokens grants digital-delivery access exactly once per
// (paid order, digital product) pair. Idempotent: the composite unique index
// on (order_id, product_id) backs the get-or-create, so repeated calls never
// issue duplicate tokens. Orders still in CREATED status get nothing.
func EnsureDigitalTokens(db *gorm.DB, order *models.Order) error {
	if order.Status != models.OrderStatusPaid {
		return nil
	}

	var items []models.OrderItem
	if err := db.Preload("Product").Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}

	for _, item := range items {
		if !item.Product.IsDigital() {
			continue
		}

		token := models.DigitalAccessToken{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Token:     utils.MakeToken(),
		}
		err := db.Where("order_id = ? AND product_id = ?", order.ID, item.ProductID).
			FirstOrCreate(&token).Error
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost a concurrent get-or-create for the same pair; the
				// winner's token stands
				continue
			}
			return fmt.Errorf("failed to issue digital token: %w", err)
		}
	}
	return nil
}
