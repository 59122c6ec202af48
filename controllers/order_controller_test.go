package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/neeste/neeste-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func orderRouter() *gin.Engine {
	router := gin.New()
	router.POST("/api/public/orders/", CreateOrder)
	return router
}

func seedProducts(t *testing.T, db *gorm.DB) (physical, digital models.Product) {
	t.Helper()
	fileKey := "digital/guide.pdf"
	physical = models.Product{Name: "Hair Oil", Type: models.ProductTypePhysical, Price: 1000}
	digital = models.Product{Name: "Care Guide", Type: models.ProductTypeDigital, Price: 5000, FileKey: &fileKey}
	require.NoError(t, db.Create(&physical).Error)
	require.NoError(t, db.Create(&digital).Error)
	return physical, digital
}

func TestCreateOrder(t *testing.T) {
	db := setupTest(t)
	physical, digital := seedProducts(t, db)
	router := orderRouter()

	w := performRequest(router, "POST", "/api/public/orders/", gin.H{
		"full_name": "Jane Doe",
		"phone":     "256700000001",
		"email":     "jane@example.com",
		"items": []gin.H{
			{"product": physical.ID, "qty": 2},
			{"product": digital.ID, "qty": 1},
		},
	})

	require.Equal(t, http.StatusCreated, w.Code, "Response: %s", w.Body.String())

	var order models.Order
	require.NoError(t, db.Preload("Items").First(&order).Error)
	assert.Equal(t, models.OrderStatusCreated, order.Status)
	assert.Equal(t, int64(7000), order.TotalAmount, "2x1000 + 1x5000")
	assert.Len(t, order.Reference, 10)
	require.Len(t, order.Items, 2)

	// Unit prices are frozen copies, not product references
	for _, item := range order.Items {
		if item.ProductID == physical.ID {
			assert.Equal(t, int64(1000), item.UnitPrice)
			assert.Equal(t, 2, item.Qty)
		} else {
			assert.Equal(t, int64(5000), item.UnitPrice)
			assert.Equal(t, 1, item.Qty)
		}
	}

	var notification models.Notification
	require.NoError(t, db.First(&notification).Error)
	assert.Equal(t, models.NotificationNewOrder, notification.Type)
	assert.Contains(t, notification.Title, order.Reference)
}

func TestCreateOrderPriceChangeDoesNotAffectExistingOrder(t *testing.T) {
	db := setupTest(t)
	physical, _ := seedProducts(t, db)
	router := orderRouter()

	w := performRequest(router, "POST", "/api/public/orders/", gin.H{
		"full_name": "Jane Doe",
		"phone":     "256700000001",
		"items":     []gin.H{{"product": physical.ID, "qty": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, db.Model(&physical).Update("price", 9999).Error)

	var item models.OrderItem
	require.NoError(t, db.First(&item).Error)
	assert.Equal(t, int64(1000), item.UnitPrice, "Attached price must survive a catalog price change")
}

func TestCreateOrderQtyDefaultsToOne(t *testing.T) {
	db := setupTest(t)
	physical, _ := seedProducts(t, db)
	router := orderRouter()

	w := performRequest(router, "POST", "/api/public/orders/", gin.H{
		"full_name": "Jane Doe",
		"phone":     "256700000001",
		"items":     []gin.H{{"product": physical.ID}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var item models.OrderItem
	require.NoError(t, db.First(&item).Error)
	assert.Equal(t, 1, item.Qty, "Omitted qty should coerce to 1")
}

func TestCreateOrderValidation(t *testing.T) {
	setupTest(t)
	router := orderRouter()

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing full name", gin.H{"phone": "256700000001", "items": []gin.H{{"product": 1}}}},
		{"missing phone", gin.H{"full_name": "Jane", "items": []gin.H{{"product": 1}}}},
		{"empty items", gin.H{"full_name": "Jane", "phone": "256700000001", "items": []gin.H{}}},
		{"bad email", gin.H{"full_name": "Jane", "phone": "256700000001", "email": "nope", "items": []gin.H{{"product": 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, "POST", "/api/public/orders/", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
		})
	}
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	db := setupTest(t)
	router := orderRouter()

	w := performRequest(router, "POST", "/api/public/orders/", gin.H{
		"full_name": "Jane Doe",
		"phone":     "256700000001",
		"items":     []gin.H{{"product": 9999, "qty": 1}},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", errorCode(t, w))

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count, "Failed validation must not leave a partial order")
}

func TestCreateOrderInactiveProduct(t *testing.T) {
	db := setupTest(t)
	inactive := models.Product{Name: "Retired", Type: models.ProductTypePhysical, Price: 500}
	require.NoError(t, db.Create(&inactive).Error)
	require.NoError(t, db.Model(&inactive).Update("is_active", false).Error)
	router := orderRouter()

	w := performRequest(router, "POST", "/api/public/orders/", gin.H{
		"full_name": "Jane Doe",
		"phone":     "256700000001",
		"items":     []gin.H{{"product": inactive.ID, "qty": 1}},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", errorCode(t, w))
}
