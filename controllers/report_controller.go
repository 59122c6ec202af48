package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neeste/neeste-api/config"
	"github.com/neeste/neeste-api/models"
)

// reportPeriod resolves the reporting window from start_date/end_date query
// params, falling back to the last `days` days
func reportPeriod(c *gin.Context) (time.Time, time.Time, bool) {
	days := 30
	if d, err := strconv.Atoi(c.DefaultQuery("days", "30")); err == nil && d > 0 {
		days = d
	}

	startStr := c.Query("start_date")
	endStr := c.Query("end_date")
	if startStr != "" && endStr != "" {
		start, err1 := time.Parse("2006-01-02", startStr)
		end, err2 := time.Parse("2006-01-02", endStr)
		if err1 != nil || err2 != nil {
			return time.Time{}, time.Time{}, false
		}
		// Include the whole end day
		return start, end.AddDate(0, 0, 1), true
	}

	end := time.Now().UTC()
	return end.AddDate(0, 0, -days), end, true
}

// SalesReport handles GET /api/admin/reports/sales/ - revenue and order
// totals for a period plus a per-day breakdown
func SalesReport(c *gin.Context) {
	start, end, ok := reportPeriod(c)
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse("VALIDATION_ERROR", "Dates must be YYYY-MM-DD"))
		return
	}

	db := config.GetDB()

	var totalOrders, paidOrders, pendingOrders int64
	db.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", start, end).Count(&totalOrders)
	db.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ? AND status = ?", start, end, models.OrderStatusPaid).
		Count(&paidOrders)
	db.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ? AND status = ?", start, end, models.OrderStatusCreated).
		Count(&pendingOrders)

	var revenue int64
	db.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ? AND status = ?", start, end, models.OrderStatusPaid).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&revenue)

	var avgOrderValue float64
	if paidOrders > 0 {
		avgOrderValue = float64(revenue) / float64(paidOrders)
	}

	daily := []gin.H{}
	for day := start.Truncate(24 * time.Hour); day.Before(end); day = day.AddDate(0, 0, 1) {
		next := day.AddDate(0, 0, 1)

		var dayRevenue int64
		var dayCount int64
		db.Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ? AND status = ?", day, next, models.OrderStatusPaid).
			Count(&dayCount)
		db.Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ? AND status = ?", day, next, models.OrderStatusPaid).
			Select("COALESCE(SUM(total_amount), 0)").Scan(&dayRevenue)

		var dayAvg float64
		if dayCount > 0 {
			dayAvg = float64(dayRevenue) / float64(dayCount)
		}
		daily = append(daily, gin.H{
			"date":            day.Format("2006-01-02"),
			"total_revenue":   dayRevenue,
			"order_count":     dayCount,
			"avg_order_value": dayAvg,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total_revenue":   revenue,
		"total_orders":    totalOrders,
		"paid_orders":     paidOrders,
		"pending_orders":  pendingOrders,
		"avg_order_value": avgOrderValue,
		"daily_revenue":   daily,
		"period": gin.H{
			"start": start.Format("2006-01-02"),
			"end":   end.AddDate(0, 0, -1).Format("2006-01-02"),
		},
	})
}

// ProductsReport handles GET /api/admin/reports/products/ - per-product
// quantity and revenue over paid orders in a period
func ProductsReport(c *gin.Context) {
	start, end, ok := reportPeriod(c)
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse("VALIDATION_ERROR", "Dates must be YYYY-MM-DD"))
		return
	}

	db := config.GetDB()

	type productStat struct {
		ProductID    uint   `json:"product_id"`
		Name         string `json:"name"`
		ProductType  string `json:"product_type"`
		QuantitySold int64  `json:"quantity_sold"`
		TotalRevenue int64  `json:"total_revenue"`
	}
	var stats []productStat
	db.Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.created_at >= ? AND orders.created_at < ? AND orders.status = ?",
			start, end, models.OrderStatusPaid).
		Select("products.id AS product_id, products.name AS name, products.type AS product_type, " +
			"SUM(order_items.qty) AS quantity_sold, SUM(order_items.qty * order_items.unit_price) AS total_revenue").
		Group("products.id, products.name, products.type").
		Order("total_revenue DESC").
		Scan(&stats)

	var totalQty, totalRevenue int64
	for _, s := range stats {
		totalQty += s.QuantitySold
		totalRevenue += s.TotalRevenue
	}
	if stats == nil {
		stats = []productStat{}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_quantity_sold":   totalQty,
		"total_product_revenue": totalRevenue,
		"top_products":          stats,
		"period": gin.H{
			"start": start.Format("2006-01-02"),
			"end":   end.AddDate(0, 0, -1).Format("2006-01-02"),
		},
	})
}
