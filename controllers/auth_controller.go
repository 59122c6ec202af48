package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neeste/neeste-api/config"
	"github.com/neeste/neeste-api/middleware"
	"github.com/neeste/neeste-api/models"
	"golang.org/x/crypto/bcrypt"
)

// LoginRequest represents the admin login body
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login/ - verifies admin credentials and
// returns a signed bearer token
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("VALIDATION_ERROR", "Username and password are required"))
		return
	}

	db := config.GetDB()
	var admin models.AdminUser
	if err := db.Where("username = ?", req.Username).First(&admin).Error; err != nil {
		c.JSON(http.StatusUnauthorized, errorResponse("INVALID_CREDENTIALS", "Invalid username or password"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, errorResponse("INVALID_CREDENTIALS", "Invalid username or password"))
		return
	}

	token, err := middleware.GenerateToken(config.GetConfig(), admin.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("TOKEN_ERROR", "Failed to issue token"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  admin,
	})
}
