package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neeste/neeste-api/config"
	"github.com/neeste/neeste-api/middleware"
	"github.com/neeste/neeste-api/models"
	"github.com/neeste/neeste-api/services"
)

// AdminNewsletter handles GET /api/admin/newsletter/ - all subscribers
func AdminNewsletter(c *gin.Context) {
	db := config.GetDB()

	var subscribers []models.NewsletterSubscriber
	if err := db.Order("created_at DESC").Find(&subscribers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to load subscribers"))
		return
	}
	c.JSON(http.StatusOK, subscribers)
}

// SendTestEmailRequest represents the test-send body
type SendTestEmailRequest struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// AdminSendTestEmail handles POST /api/admin/newsletter/send-test/ - sends a
// test email to the logged-in admin's address
func AdminSendTestEmail(c *gin.Context) {
	admin, err := middleware.GetAdminUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, errorResponse("UNAUTHORIZED", "Could not resolve admin user"))
		return
	}
	if admin.Email == "" {
		c.JSON(http.StatusBadRequest, errorResponse("NO_EMAIL", "Admin account has no email address"))
		return
	}

	var req SendTestEmailRequest
	_ = c.ShouldBindJSON(&req)
	if req.Subject == "" {
		req.Subject = "Test"
	}

	db := config.GetDB()
	var settings models.SiteSettings
	if err := db.First(&settings).Error; err != nil || settings.EmailHostUser == "" {
		c.JSON(http.StatusBadRequest, errorResponse("NOT_CONFIGURED", "Email is not configured"))
		return
	}

	if err := services.GetEmailService().Send(&settings, admin.Email, req.Subject, req.Content); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("SEND_FAILED", err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Sent to " + admin.Email})
}

// SendNewsletterRequest represents the campaign send body
type SendNewsletterRequest struct {
	Subject      string `json:"subject" binding:"required"`
	Content      string `json:"content" binding:"required"`
	RecipientIDs []uint `json:"recipient_ids"`
}

// AdminSendNewsletter handles POST /api/admin/newsletter/send/ - sends a
// campaign to selected subscribers (or all), skipping individual failures,
// and records the campaign
func AdminSendNewsletter(c *gin.Context) {
	var req SendNewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("VALIDATION_ERROR", "Subject and content are required"))
		return
	}

	db := config.GetDB()
	var settings models.SiteSettings
	if err := db.First(&settings).Error; err != nil || settings.EmailHostUser == "" {
		c.JSON(http.StatusBadRequest, errorResponse("NOT_CONFIGURED", "Email is not configured"))
		return
	}

	query := db.Model(&models.NewsletterSubscriber{})
	if len(req.RecipientIDs) > 0 {
		query = query.Where("id IN ?", req.RecipientIDs)
	}
	var subscribers []models.NewsletterSubscriber
	if err := query.Find(&subscribers).Error; err != nil || len(subscribers) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse("NO_SUBSCRIBERS", "No subscribers to send to"))
		return
	}

	mailer := services.GetEmailService()
	sent := 0
	for _, subscriber := range subscribers {
		if err := mailer.Send(&settings, subscriber.Email, req.Subject, req.Content); err == nil {
			sent++
		}
	}

	campaign := models.EmailCampaign{
		Subject:         req.Subject,
		Content:         req.Content,
		RecipientsCount: sent,
	}
	if err := db.Create(&campaign).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to record campaign"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": fmt.Sprintf("Sent to %d", sent), "sent": sent})
}

// AdminEmailCampaigns handles GET /api/admin/newsletter/campaigns/
func AdminEmailCampaigns(c *gin.Context) {
	db := config.GetDB()

	var campaigns []models.EmailCampaign
	if err := db.Order("sent_at DESC").Find(&campaigns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to load campaigns"))
		return
	}
	c.JSON(http.StatusOK, campaigns)
}

// AdminContacts handles GET /api/admin/contacts/ - all contact submissions
func AdminContacts(c *gin.Context) {
	db := config.GetDB()

	var contacts []models.ContactSubmission
	if err := db.Order("created_at DESC").Find(&contacts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to load contacts"))
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// AdminContactMarkRead handles POST /api/admin/contacts/:id/mark-read/
func AdminContactMarkRead(c *gin.Context) {
	db := config.GetDB()

	var contact models.ContactSubmission
	if err := db.First(&contact, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, errorResponse("NOT_FOUND", "Contact submission not found"))
		return
	}

	if err := db.Model(&contact).Update("read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to update submission"))
		return
	}
	c.JSON(http.StatusOK, contact)
}
