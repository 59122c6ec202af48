package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neeste/neeste-api/config"
	"github.com/neeste/neeste-api/models"
	"github.com/neeste/neeste-api/services"
)

// AdminOrders handles GET /api/admin/orders/ - all orders with their items
func AdminOrders(c *gin.Context) {
	db := config.GetDB()

	var orders []models.Order
	err := db.Preload("Items.Product").Order("created_at DESC").Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to load orders"))
		return
	}
	c.JSON(http.StatusOK, orders)
}

// AdminMarkPaid handles POST /api/admin/orders/:id/mark-paid/ - manual paid
// transition; a no-op when the order is already PAID
func AdminMarkPaid(c *gin.Context) {
	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, errorResponse("ORDER_NOT_FOUND", "Order not found"))
		return
	}

	if _, err := services.MarkOrderPaid(db, &order); err != nil {
		log.Printf("warning: paid transition incomplete for order %d: %v", order.ID, err)
	}

	if err := db.Preload("Items.Product").First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to reload order"))
		return
	}
	c.JSON(http.StatusOK, order)
}
