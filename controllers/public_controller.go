package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neeste/neeste-api/config"
	"github.com/neeste/neeste-api/models"
	"github.com/neeste/neeste-api/services"
	"gorm.io/gorm"
)

// PublicBootstrap handles GET /api/public/bootstrap/ - returns site settings
// and the active catalog in one response, and counts the visit when tracking
// is enabled
func PublicBootstrap(c *gin.Context) {
	db := config.GetDB()

	var settings models.SiteSettings
	hasSettings := db.First(&settings).Error == nil

	if hasSettings && settings.VisitTrackingEnabled {
		recordSiteVisit(db)
	}

	var products []models.Product
	db.Where("is_active = ?", true).Order("created_at").Find(&products)
	for i := range products {
		attachProductImageURL(&products[i])
	}

	response := gin.H{"products": products}
	if hasSettings {
		response["settings"] = settings
	} else {
		response["settings"] = gin.H{}
	}
	c.JSON(http.StatusOK, response)
}

// recordSiteVisit increments today's visit counter, creating the row on the
// first visit of the day
func recordSiteVisit(db *gorm.DB) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	visit := models.SiteVisit{Date: today, Count: 1}
	result := db.Where("date = ?", today).FirstOrCreate(&visit)
	if result.Error == nil && result.RowsAffected == 0 {
		db.Model(&visit).UpdateColumn("count", gorm.Expr("count + 1"))
	}
}

// PublicProducts handles GET /api/public/products/ - lists active products,
// optionally filtered by type
func PublicProducts(c *gin.Context) {
	db := config.GetDB()

	query := db.Where("is_active = ?", true)
	productType := strings.ToUpper(c.Query("type"))
	if productType == models.ProductTypePhysical || productType == models.ProductTypeDigital {
		query = query.Where("type = ?", productType)
	}

	var products []models.Product
	if err := query.Order("created_at").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to load products"))
		return
	}
	for i := range products {
		attachProductImageURL(&products[i])
	}
	c.JSON(http.StatusOK, products)
}

// PublicProductDetail handles GET /api/public/products/:id/
func PublicProductDetail(c *gin.Context) {
	db := config.GetDB()

	var product models.Product
	if err := db.Where("id = ? AND is_active = ?", c.Param("id"), true).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, errorResponse("PRODUCT_NOT_FOUND", "Product not found"))
		return
	}
	attachProductImageURL(&product)
	c.JSON(http.StatusOK, product)
}

// PublicBlogList handles GET /api/public/blog/ - lists published posts
func PublicBlogList(c *gin.Context) {
	db := config.GetDB()

	var posts []models.BlogPost
	err := db.Where("status = ?", models.BlogStatusPublished).
		Order("published_at DESC").Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to load posts"))
		return
	}
	for i := range posts {
		attachBlogImageURL(&posts[i])
	}
	c.JSON(http.StatusOK, posts)
}

// PublicBlogDetail handles GET /api/public/blog/:slug/ - returns one published
// post and increments its view counter
func PublicBlogDetail(c *gin.Context) {
	db := config.GetDB()

	var post models.BlogPost
	err := db.Where("slug = ? AND status = ?", c.Param("slug"), models.BlogStatusPublished).
		First(&post).Error
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse("POST_NOT_FOUND", "Post not found"))
		return
	}

	db.Model(&post).UpdateColumn("views", gorm.Expr("views + 1"))
	post.Views++

	attachBlogImageURL(&post)
	c.JSON(http.StatusOK, post)
}

// SubscribeNewsletterRequest represents the newsletter signup body
type SubscribeNewsletterRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SubscribeNewsletter handles POST /api/public/newsletter/subscribe/ -
// get-or-creates the subscriber; only a first-time signup emits a notification
func SubscribeNewsletter(c *gin.Context) {
	var req SubscribeNewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("VALIDATION_ERROR", "Email is required"))
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	db := config.GetDB()
	subscriber := models.NewsletterSubscriber{Email: email}
	result := db.Where("email = ?", email).FirstOrCreate(&subscriber)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to subscribe"))
		return
	}
	created := result.RowsAffected > 0

	if created {
		services.EmitNotification(db, models.NotificationNewsletterSubscription,
			"New Newsletter Subscriber",
			fmt.Sprintf("%s subscribed", email),
			"/admin/newsletter")
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "created": created})
}

// ContactSubmitRequest represents the contact form body
type ContactSubmitRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// ContactSubmit handles POST /api/public/contact/ - stores a contact form
// submission and notifies the admin feed
func ContactSubmit(c *gin.Context) {
	var req ContactSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("VALIDATION_ERROR", "Invalid request data"))
		return
	}

	db := config.GetDB()
	contact := models.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := db.Create(&contact).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to save submission"))
		return
	}

	subject := contact.Subject
	if subject == "" {
		subject = "No subject"
	}
	services.EmitNotification(db, models.NotificationContactSubmission,
		"New Contact",
		fmt.Sprintf("%s: %s", contact.Name, subject),
		"/admin/contacts")

	c.JSON(http.StatusCreated, gin.H{"ok": true, "message": "Message sent!"})
}
