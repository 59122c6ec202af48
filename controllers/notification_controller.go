package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neeste/neeste-api/config"
	"github.com/neeste/neeste-api/models"
)

// AdminNotifications handles GET /api/admin/notifications/ - latest feed
// entries plus the unread count
func AdminNotifications(c *gin.Context) {
	db := config.GetDB()

	var notifications []models.Notification
	if err := db.Order("created_at DESC").Limit(50).Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to load notifications"))
		return
	}

	var unread int64
	db.Model(&models.Notification{}).Where("read = ?", false).Count(&unread)

	c.JSON(http.StatusOK, gin.H{
		"results":      notifications,
		"unread_count": unread,
	})
}

// NotificationDetail handles GET, PATCH and DELETE /api/admin/notifications/:id/
func NotificationDetail(c *gin.Context) {
	db := config.GetDB()

	var notification models.Notification
	if err := db.First(&notification, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, errorResponse("NOT_FOUND", "Notification not found"))
		return
	}

	switch c.Request.Method {
	case http.MethodGet:
		c.JSON(http.StatusOK, notification)
	case http.MethodPatch:
		var updates struct {
			Read *bool `json:"read"`
		}
		if err := c.ShouldBindJSON(&updates); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("VALIDATION_ERROR", "Invalid request data"))
			return
		}
		if updates.Read != nil {
			if err := db.Model(&notification).Update("read", *updates.Read).Error; err != nil {
				c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to update notification"))
				return
			}
		}
		c.JSON(http.StatusOK, notification)
	case http.MethodDelete:
		if err := db.Delete(&notification).Error; err != nil {
			c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to delete notification"))
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// AdminNotificationMarkRead handles POST /api/admin/notifications/:id/mark-read/
func AdminNotificationMarkRead(c *gin.Context) {
	db := config.GetDB()

	var notification models.Notification
	if err := db.First(&notification, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, errorResponse("NOT_FOUND", "Notification not found"))
		return
	}

	if err := db.Model(&notification).Update("read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to update notification"))
		return
	}
	c.JSON(http.StatusOK, notification)
}

// AdminNotificationsMarkAllRead handles POST /api/admin/notifications/mark-all-read/
func AdminNotificationsMarkAllRead(c *gin.Context) {
	db := config.GetDB()

	err := db.Model(&models.Notification{}).Where("read = ?", false).Update("read", true).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to update notifications"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "All marked read"})
}
