package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/neeste/neeste-api/models"
	"github.com/neeste/neeste-api/services"
)

// errorResponse builds the standard error envelope
func errorResponse(code, message string) gin.H {
	return gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}

// absoluteURL builds an absolute URL for a path using the inbound request's
// scheme and host
func absoluteURL(c *gin.Context, path string) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, path)
}

// attachProductImageURL fills the computed ImageURL field from storage
func attachProductImageURL(p *models.Product) {
	storage := services.GetStorageService()
	if storage == nil || p.ImageKey == nil || *p.ImageKey == "" {
		return
	}
	if url, err := storage.GetPresignedURL(*p.ImageKey); err == nil && url != "" {
		p.ImageURL = &url
	}
}

// attachBlogImageURL fills the computed FeaturedImageURL field from storage
func attachBlogImageURL(post *models.BlogPost) {
	storage := services.GetStorageService()
	if storage == nil || post.FeaturedImageKey == nil || *post.FeaturedImageKey == "" {
		return
	}
	if url, err := storage.GetPresignedURL(*post.FeaturedImageKey); err == nil && url != "" {
		post.FeaturedImageURL = &url
	}
}
