package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neeste/neeste-api/config"
	"github.com/neeste/neeste-api/middleware"
	"github.com/neeste/neeste-api/models"
	"golang.org/x/crypto/bcrypt"
)

// AdminDashboard handles GET /api/admin/dashboard/ - aggregate stats for the
// dashboard landing page
func AdminDashboard(c *gin.Context) {
	db := config.GetDB()

	var totalRevenue int64
	db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPaid).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&totalRevenue)

	var totalOrders, paidOrders, pendingOrders int64
	db.Model(&models.Order{}).Count(&totalOrders)
	db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPaid).Count(&paidOrders)
	db.Model(&models.Order{}).Where("status = ?", models.OrderStatusCreated).Count(&pendingOrders)

	type productSale struct {
		Name         string `json:"name"`
		QuantitySold int64  `json:"quantity_sold"`
		Revenue      int64  `json:"revenue"`
	}
	var productSales []productSale
	db.Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.status = ?", models.OrderStatusPaid).
		Select("products.name AS name, SUM(order_items.qty) AS quantity_sold, SUM(order_items.qty * order_items.unit_price) AS revenue").
		Group("products.name").
		Order("revenue DESC").
		Scan(&productSales)

	var recentOrders []models.Order
	db.Preload("Items.Product").Order("created_at DESC").Limit(10).Find(&recentOrders)

	thirtyDaysAgo := time.Now().UTC().AddDate(0, 0, -30)
	var visits []models.SiteVisit
	db.Where("date >= ?", thirtyDaysAgo).Order("date").Find(&visits)
	var totalVisits uint
	visitsData := make([]gin.H, 0, len(visits))
	for _, v := range visits {
		totalVisits += v.Count
		visitsData = append(visitsData, gin.H{"date": v.Date.Format("2006-01-02"), "count": v.Count})
	}

	var totalPosts, publishedPosts, unreadContacts int64
	db.Model(&models.BlogPost{}).Count(&totalPosts)
	db.Model(&models.BlogPost{}).Where("status = ?", models.BlogStatusPublished).Count(&publishedPosts)
	db.Model(&models.ContactSubmission{}).Where("read = ?", false).Count(&unreadContacts)

	c.JSON(http.StatusOK, gin.H{
		"revenue":       gin.H{"total": totalRevenue, "currency": "UGX"},
		"orders":        gin.H{"total": totalOrders, "paid": paidOrders, "pending": pendingOrders},
		"product_sales": productSales,
		"recent_orders": recentOrders,
		"site_visits":   gin.H{"total": totalVisits, "data": visitsData},
		"blog":          gin.H{"total": totalPosts, "published": publishedPosts},
		"contacts":      gin.H{"unread": unreadContacts},
	})
}

// AdminProfileMe handles GET /api/admin/profile/me/
func AdminProfileMe(c *gin.Context) {
	admin, err := middleware.GetAdminUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, errorResponse("UNAUTHORIZED", "Could not resolve admin user"))
		return
	}
	c.JSON(http.StatusOK, admin)
}

// AdminProfileUpdateRequest represents the profile update body
type AdminProfileUpdateRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email" binding:"omitempty,email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// AdminProfileUpdate handles PUT /api/admin/profile/update/
func AdminProfileUpdate(c *gin.Context) {
	admin, err := middleware.GetAdminUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, errorResponse("UNAUTHORIZED", "Could not resolve admin user"))
		return
	}

	var req AdminProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("VALIDATION_ERROR", "Invalid request data"))
		return
	}

	if req.Username != nil {
		admin.Username = *req.Username
	}
	if req.Email != nil {
		admin.Email = *req.Email
	}
	if req.FirstName != nil {
		admin.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		admin.LastName = *req.LastName
	}

	if err := config.GetDB().Save(admin).Error; err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("UPDATE_FAILED", "Failed to update profile"))
		return
	}
	c.JSON(http.StatusOK, admin)
}

// ChangePasswordRequest represents the change-password body
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// AdminChangePassword handles POST /api/admin/profile/change-password/
func AdminChangePassword(c *gin.Context) {
	admin, err := middleware.GetAdminUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, errorResponse("UNAUTHORIZED", "Could not resolve admin user"))
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("VALIDATION_ERROR", "Both passwords are required"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("INVALID_CREDENTIALS", "Current password incorrect"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("HASH_ERROR", "Failed to hash password"))
		return
	}

	admin.PasswordHash = string(hash)
	if err := config.GetDB().Save(admin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to change password"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Password changed"})
}

// AdminSettings handles GET and PUT /api/admin/settings/ - the singleton
// settings row is created on first access
func AdminSettings(c *gin.Context) {
	db := config.GetDB()

	var settings models.SiteSettings
	if err := db.First(&settings).Error; err != nil {
		settings = models.SiteSettings{SiteTitle: "Neesté"}
		if err := db.Create(&settings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to load settings"))
			return
		}
	}

	if c.Request.Method == http.MethodGet {
		c.JSON(http.StatusOK, settings)
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("VALIDATION_ERROR", "Invalid request data"))
		return
	}
	// Never allow the primary key to move
	delete(updates, "id")

	if err := db.Model(&settings).Updates(updates).Error; err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("UPDATE_FAILED", "Failed to update settings"))
		return
	}
	if err := db.First(&settings, settings.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to reload settings"))
		return
	}
	c.JSON(http.StatusOK, settings)
}

// AdminResetVisits handles POST /api/admin/settings/reset-visits/
func AdminResetVisits(c *gin.Context) {
	db := config.GetDB()

	var count int64
	db.Model(&models.SiteVisit{}).Count(&count)
	if err := db.Where("1 = 1").Delete(&models.SiteVisit{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to reset visits"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": fmt.Sprintf("Reset %d records", count)})
}
