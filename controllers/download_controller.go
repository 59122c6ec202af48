package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/neeste/neeste-api/config"
	"github.com/neeste/neeste-api/models"
	"github.com/neeste/neeste-api/services"
)

// DownloadDigital handles GET /api/download/:token/ - streams a purchased
// digital file. Succeeds only when the owning order is PAID and the product
// still has an attached file; everything else is a plain not-found.
func DownloadDigital(c *gin.Context) {
	tokenString := c.Param("token")

	db := config.GetDB()
	var token models.DigitalAccessToken
	err := db.Preload("Order").Preload("Product").
		Where("token = ?", tokenString).First(&token).Error
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse("NOT_FOUND", "Download not available"))
		return
	}

	if !token.Order.IsPaid() {
		c.JSON(http.StatusNotFound, errorResponse("NOT_FOUND", "Download not available"))
		return
	}
	if token.Product.FileKey == nil || *token.Product.FileKey == "" {
		c.JSON(http.StatusNotFound, errorResponse("NOT_FOUND", "Download not available"))
		return
	}

	storage := services.GetStorageService()
	if storage == nil {
		c.JSON(http.StatusNotFound, errorResponse("NOT_FOUND", "Download not available"))
		return
	}

	reader, length, err := storage.DownloadFile(*token.Product.FileKey)
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse("NOT_FOUND", "Download not available"))
		return
	}
	defer func() {
		_ = reader.Close()
	}()

	filename := filepath.Base(*token.Product.FileKey)
	c.DataFromReader(http.StatusOK, length, "application/octet-stream", reader, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", filename),
	})
}
