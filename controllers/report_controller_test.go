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

func reportRouter() *gin.Engine {
	router := gin.New()
	router.GET("/api/admin/reports/sales/", SalesReport)
	router.GET("/api/admin/reports/products/", ProductsReport)
	return router
}

func seedReportData(t *testing.T, db *gorm.DB) {
	t.Helper()
	physical, digital := seedProducts(t, db)

	paid := models.Order{Reference: "PAIDREF001", FullName: "Jane", Phone: "256700000001",
		TotalAmount: 7000, Status: models.OrderStatusPaid}
	pending := models.Order{Reference: "PENDREF001", FullName: "John", Phone: "256700000002",
		TotalAmount: 1000, Status: models.OrderStatusCreated}
	require.NoError(t, db.Create(&paid).Error)
	require.NoError(t, db.Create(&pending).Error)

	items := []models.OrderItem{
		{OrderID: paid.ID, ProductID: physical.ID, Qty: 2, UnitPrice: 1000},
		{OrderID: paid.ID, ProductID: digital.ID, Qty: 1, UnitPrice: 5000},
		{OrderID: pending.ID, ProductID: physical.ID, Qty: 1, UnitPrice: 1000},
	}
	require.NoError(t, db.Create(&items).Error)
}

func TestSalesReport(t *testing.T) {
	db := setupTest(t)
	seedReportData(t, db)
	router := reportRouter()

	w := performRequest(router, "GET", "/api/admin/reports/sales/", nil)

	require.Equal(t, http.StatusOK, w.Code, "Response: %s", w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, float64(7000), body["total_revenue"], "Only paid orders count toward revenue")
	assert.Equal(t, float64(2), body["total_orders"])
	assert.Equal(t, float64(1), body["paid_orders"])
	assert.Equal(t, float64(1), body["pending_orders"])
	assert.Equal(t, float64(7000), body["avg_order_value"])

	daily, ok := body["daily_revenue"].([]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, daily, "Default period covers the last 30 days")
}

func TestSalesReportBadDates(t *testing.T) {
	setupTest(t)
	router := reportRouter()

	w := performRequest(router, "GET", "/api/admin/reports/sales/?start_date=nope&end_date=2026-01-31", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
}

func TestSalesReportEmptyPeriod(t *testing.T) {
	db := setupTest(t)
	seedReportData(t, db)
	router := reportRouter()

	// A window far in the past excludes everything seeded just now
	w := performRequest(router, "GET", "/api/admin/reports/sales/?start_date=2020-01-01&end_date=2020-01-07", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(0), body["total_revenue"])
	assert.Equal(t, float64(0), body["total_orders"])
	assert.Equal(t, float64(0), body["avg_order_value"])

	period := body["period"].(map[string]interface{})
	assert.Equal(t, "2020-01-01", period["start"])
	assert.Equal(t, "2020-01-07", period["end"], "End date is inclusive")
}

func TestProductsReport(t *testing.T) {
	db := setupTest(t)
	seedReportData(t, db)
	router := reportRouter()

	w := performRequest(router, "GET", "/api/admin/reports/products/", nil)

	require.Equal(t, http.StatusOK, w.Code, "Response: %s", w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, float64(3), body["total_quantity_sold"], "Pending order lines are excluded")
	assert.Equal(t, float64(7000), body["total_product_revenue"])

	top, ok := body["top_products"].([]interface{})
	require.True(t, ok)
	require.Len(t, top, 2)

	// Ordered by revenue: the digital line (5000) outranks the physical (2000)
	first := top[0].(map[string]interface{})
	assert.Equal(t, "Care Guide", first["name"])
	assert.Equal(t, float64(5000), first["total_revenue"])
	assert.Equal(t, float64(1), first["quantity_sold"])

	second := top[1].(map[string]interface{})
	assert.Equal(t, "Hair Oil", second["name"])
	assert.Equal(t, float64(2000), second["total_revenue"])
}

func TestProductsReportEmpty(t *testing.T) {
	setupTest(t)
	router := reportRouter()

	w := performRequest(router, "GET", "/api/admin/reports/products/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(0), body["total_quantity_sold"])
	top, ok := body["top_products"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, top, "No sales yields an empty list, not null")
}
