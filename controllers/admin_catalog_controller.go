package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neeste/neeste-api/config"
	"github.com/neeste/neeste-api/models"
	"github.com/neeste/neeste-api/services"
	"github.com/neeste/neeste-api/utils"
	"gorm.io/gorm"
)

// AdminProducts handles GET /api/admin/products/ - full catalog, newest first
func AdminProducts(c *gin.Context) {
	db := config.GetDB()

	var products []models.Product
	if err := db.Order("created_at DESC").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to load products"))
		return
	}
	for i := range products {
		attachProductImageURL(&products[i])
	}
	c.JSON(http.StatusOK, products)
}

// AdminProductCreate handles POST /api/admin/products/create/ - multipart
// form with optional image and digital file uploads
func AdminProductCreate(c *gin.Context) {
	product := models.Product{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Currency:    "UGX",
		Type:        strings.ToUpper(c.PostForm("type")),
		IsActive:    true,
	}
	if product.Name == "" {
		c.JSON(http.StatusBadRequest, errorResponse("VALIDATION_ERROR", "Name is required"))
		return
	}
	if product.Type != models.ProductTypePhysical && product.Type != models.ProductTypeDigital {
		c.JSON(http.StatusBadRequest, errorResponse("VALIDATION_ERROR", "Type must be PHYSICAL or DIGITAL"))
		return
	}
	price, err := strconv.ParseInt(c.PostForm("price"), 10, 64)
	if err != nil || price < 0 {
		c.JSON(http.StatusBadRequest, errorResponse("VALIDATION_ERROR", "Price must be a non-negative integer"))
		return
	}
	product.Price = price
	if currency := c.PostForm("currency"); currency != "" {
		product.Currency = currency
	}
	if active := c.PostForm("is_active"); active != "" {
		product.IsActive = active == "true" || active == "1"
	}

	if !uploadProductFiles(c, &product) {
		return
	}

	if err := config.GetDB().Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to create product"))
		return
	}
	attachProductImageURL(&product)
	c.JSON(http.StatusCreated, product)
}

// AdminProductDetail handles PUT and DELETE /api/admin/products/:id/
func AdminProductDetail(c *gin.Context) {
	db := config.GetDB()

	var product models.Product
	if err := db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, errorResponse("PRODUCT_NOT_FOUND", "Product not found"))
		return
	}

	if c.Request.Method == http.MethodDelete {
		// Dependent order items and access tokens go with the product
		db.Where("product_id = ?", product.ID).Delete(&models.DigitalAccessToken{})
		db.Where("product_id = ?", product.ID).Delete(&models.OrderItem{})
		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to delete product"))
			return
		}
		if storage := services.GetStorageService(); storage != nil {
			if product.ImageKey != nil {
				_ = storage.DeleteFile(*product.ImageKey)
			}
			if product.FileKey != nil {
				_ = storage.DeleteFile(*product.FileKey)
			}
		}
		c.Status(http.StatusNoContent)
		return
	}

	if name := c.PostForm("name"); name != "" {
		product.Name = name
	}
	if description, ok := c.GetPostForm("description"); ok {
		product.Description = description
	}
	if priceStr := c.PostForm("price"); priceStr != "" {
		price, err := strconv.ParseInt(priceStr, 10, 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, errorResponse("VALIDATION_ERROR", "Price must be a non-negative integer"))
			return
		}
		product.Price = price
	}
	if productType := c.PostForm("type"); productType != "" {
		productType = strings.ToUpper(productType)
		if productType != models.ProductTypePhysical && productType != models.ProductTypeDigital {
			c.JSON(http.StatusBadRequest, errorResponse("VALIDATION_ERROR", "Type must be PHYSICAL or DIGITAL"))
			return
		}
		product.Type = productType
	}
	if currency := c.PostForm("currency"); currency != "" {
		product.Currency = currency
	}
	if active, ok := c.GetPostForm("is_active"); ok {
		product.IsActive = active == "true" || active == "1"
	}

	if !uploadProductFiles(c, &product) {
		return
	}

	if err := db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to update product"))
		return
	}
	attachProductImageURL(&product)
	c.JSON(http.StatusOK, product)
}

// uploadProductFiles stores any uploaded image/file parts on the product.
// Writes its own error response and returns false on failure.
func uploadProductFiles(c *gin.Context, product *models.Product) bool {
	storage := services.GetStorageService()

	if fileHeader, err := c.FormFile("image"); err == nil {
		if err := utils.ValidateImageFile(fileHeader); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("INVALID_FILE", err.Error()))
			return false
		}
		if storage == nil {
			c.JSON(http.StatusInternalServerError, errorResponse("STORAGE_ERROR", "Storage is not configured"))
			return false
		}
		key, err := storage.UploadFile(fileHeader, "products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, errorResponse("STORAGE_ERROR", "Failed to upload image"))
			return false
		}
		product.ImageKey = &key
	}

	if fileHeader, err := c.FormFile("file"); err == nil {
		if err := utils.ValidateDigitalFile(fileHeader); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("INVALID_FILE", err.Error()))
			return false
		}
		if storage == nil {
			c.JSON(http.StatusInternalServerError, errorResponse("STORAGE_ERROR", "Storage is not configured"))
			return false
		}
		key, err := storage.UploadFile(fileHeader, "digital")
		if err != nil {
			c.JSON(http.StatusInternalServerError, errorResponse("STORAGE_ERROR", "Failed to upload file"))
			return false
		}
		product.FileKey = &key
	}

	return true
}

// AdminBlogList handles GET /api/admin/blog/ - all posts, newest first
func AdminBlogList(c *gin.Context) {
	db := config.GetDB()

	var posts []models.BlogPost
	if err := db.Order("created_at DESC").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to load posts"))
		return
	}
	for i := range posts {
		attachBlogImageURL(&posts[i])
	}
	c.JSON(http.StatusOK, posts)
}

// AdminBlogCreate handles POST /api/admin/blog/create/ - multipart form with
// an optional featured image; publishing stamps published_at
func AdminBlogCreate(c *gin.Context) {
	post := models.BlogPost{
		Title:           c.PostForm("title"),
		Excerpt:         c.PostForm("excerpt"),
		Content:         c.PostForm("content"),
		MetaDescription: c.PostForm("meta_description"),
		Status:          models.BlogStatusDraft,
	}
	if post.Title == "" || post.Content == "" {
		c.JSON(http.StatusBadRequest, errorResponse("VALIDATION_ERROR", "Title and content are required"))
		return
	}
	if status := strings.ToUpper(c.PostForm("status")); status == models.BlogStatusPublished {
		post.Status = models.BlogStatusPublished
		now := time.Now().UTC()
		post.PublishedAt = &now
	}
	if post.Excerpt == "" {
		excerpt := services.StripTags(post.Content)
		if len(excerpt) > 300 {
			excerpt = excerpt[:300]
		}
		post.Excerpt = excerpt
	}

	db := config.GetDB()
	post.Slug = uniqueSlug(db, post.Title)

	if fileHeader, err := c.FormFile("featured_image"); err == nil {
		if err := utils.ValidateImageFile(fileHeader); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("INVALID_FILE", err.Error()))
			return
		}
		storage := services.GetStorageService()
		if storage == nil {
			c.JSON(http.StatusInternalServerError, errorResponse("STORAGE_ERROR", "Storage is not configured"))
			return
		}
		key, err := storage.UploadFile(fileHeader, "blog")
		if err != nil {
			c.JSON(http.StatusInternalServerError, errorResponse("STORAGE_ERROR", "Failed to upload image"))
			return
		}
		post.FeaturedImageKey = &key
	}

	if err := db.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to create post"))
		return
	}
	attachBlogImageURL(&post)
	c.JSON(http.StatusCreated, post)
}

// AdminBlogDetail handles GET, PUT and DELETE /api/admin/blog/:id/
func AdminBlogDetail(c *gin.Context) {
	db := config.GetDB()

	var post models.BlogPost
	if err := db.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, errorResponse("POST_NOT_FOUND", "Post not found"))
		return
	}

	switch c.Request.Method {
	case http.MethodGet:
		attachBlogImageURL(&post)
		c.JSON(http.StatusOK, post)
	case http.MethodDelete:
		if err := db.Delete(&post).Error; err != nil {
			c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to delete post"))
			return
		}
		c.Status(http.StatusNoContent)
	default:
		wasDraft := post.Status == models.BlogStatusDraft

		if title := c.PostForm("title"); title != "" {
			post.Title = title
		}
		if excerpt, ok := c.GetPostForm("excerpt"); ok {
			post.Excerpt = excerpt
		}
		if content := c.PostForm("content"); content != "" {
			post.Content = content
		}
		if meta, ok := c.GetPostForm("meta_description"); ok {
			post.MetaDescription = meta
		}
		if status := strings.ToUpper(c.PostForm("status")); status == models.BlogStatusPublished || status == models.BlogStatusDraft {
			post.Status = status
			if wasDraft && status == models.BlogStatusPublished {
				now := time.Now().UTC()
				post.PublishedAt = &now
			}
		}

		if fileHeader, err := c.FormFile("featured_image"); err == nil {
			if err := utils.ValidateImageFile(fileHeader); err != nil {
				c.JSON(http.StatusBadRequest, errorResponse("INVALID_FILE", err.Error()))
				return
			}
			storage := services.GetStorageService()
			if storage == nil {
				c.JSON(http.StatusInternalServerError, errorResponse("STORAGE_ERROR", "Storage is not configured"))
				return
			}
			key, err := storage.UploadFile(fileHeader, "blog")
			if err != nil {
				c.JSON(http.StatusInternalServerError, errorResponse("STORAGE_ERROR", "Failed to upload image"))
				return
			}
			post.FeaturedImageKey = &key
		}

		if err := db.Save(&post).Error; err != nil {
			c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to update post"))
			return
		}
		attachBlogImageURL(&post)
		c.JSON(http.StatusOK, post)
	}
}

// uniqueSlug derives a slug from the title, appending a numeric suffix until
// it is unique
func uniqueSlug(db *gorm.DB, title string) string {
	base := utils.Slugify(title)
	if base == "" {
		base = "post"
	}
	slug := base
	for counter := 1; ; counter++ {
		var count int64
		db.Model(&models.BlogPost{}).Where("slug = ?", slug).Count(&count)
		if count == 0 {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}
