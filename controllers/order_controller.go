package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neeste/neeste-api/config"
	"github.com/neeste/neeste-api/models"
	"github.com/neeste/neeste-api/services"
	"github.com/neeste/neeste-api/utils"
)

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	FullName string             `json:"full_name" binding:"required"`
	Phone    string             `json:"phone" binding:"required"`
	Email    string             `json:"email" binding:"omitempty,email"`
	Address  string             `json:"address"`
	Items    []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderItemRequest is one requested line item
type OrderItemRequest struct {
	Product uint `json:"product" binding:"required"`
	Qty     int  `json:"qty"`
}

// CreateOrder handles POST /api/public/orders/ - creates a new order with its
// line items. Unit prices are snapshotted from the products' current prices
// and the total is computed server-side.
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("VALIDATION_ERROR", "Invalid request data"))
		return
	}

	db := config.GetDB()

	// Resolve all products up front so an unknown or inactive product cannot
	// leave a half-built order behind
	products := make(map[uint]models.Product, len(req.Items))
	for _, item := range req.Items {
		var product models.Product
		if err := db.Where("id = ? AND is_active = ?", item.Product, true).First(&product).Error; err != nil {
			c.JSON(http.StatusNotFound, errorResponse("PRODUCT_NOT_FOUND",
				fmt.Sprintf("Product %d not found or inactive", item.Product)))
			return
		}
		products[item.Product] = product
	}

	order := models.Order{
		Reference: utils.NewOrderReference(),
		FullName:  req.FullName,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		Status:    models.OrderStatusCreated,
	}
	if err := db.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to create order"))
		return
	}

	for _, item := range req.Items {
		product := products[item.Product]
		qty := item.Qty
		if qty < 1 {
			qty = 1
		}
		orderItem := models.OrderItem{
			OrderID:   order.ID,
			ProductID: product.ID,
			Qty:       qty,
			UnitPrice: product.Price, // frozen at attach time
		}
		if err := db.Create(&orderItem).Error; err != nil {
			c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to create order item"))
			return
		}
	}

	total, err := services.ComputeOrderTotal(db, order.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to compute order total"))
		return
	}
	if err := db.Model(&order).Update("total_amount", total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to update order total"))
		return
	}

	services.EmitNotification(db, models.NotificationNewOrder,
		fmt.Sprintf("New Order #%s", order.Reference),
		fmt.Sprintf("%s - %d UGX", order.FullName, total),
		"/admin/orders")

	if err := db.Preload("Items.Product").First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to load order details"))
		return
	}

	c.JSON(http.StatusCreated, order)
}
