package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/neeste/neeste-api/config"
	"github.com/neeste/neeste-api/controllers"
	"github.com/neeste/neeste-api/middleware"
	"github.com/neeste/neeste-api/models"
	"github.com/neeste/neeste-api/services"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Basic logging
	log.Println("Starting Neesté API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	err = db.AutoMigrate(
		&models.AdminUser{},
		&models.SiteSettings{},
		&models.SiteVisit{},
		&models.Product{},
		&models.BlogPost{},
		&models.NewsletterSubscriber{},
		&models.EmailCampaign{},
		&models.ContactSubmission{},
		&models.Order{},
		&models.OrderItem{},
		&models.DigitalAccessToken{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	seedAdminUser()

	// Initialize outbound services
	services.InitMoMoService(cfg)
	if !cfg.HasMomoCredentials() {
		log.Println("MoMo credentials not configured; payment initiation will fail until they are set")
	}
	if _, err := services.InitStorageService(); err != nil {
		log.Printf("Storage service unavailable: %v", err)
	}

	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the gin engine with all routes registered
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Reference-Id"},
		AllowCredentials: false,
	}))

	api := router.Group("/api")
	{
		api.GET("/health", healthCheck)
		api.GET("/database/status", databaseStatus)

		api.POST("/auth/login/", controllers.Login)

		public := api.Group("/public")
		{
			public.GET("/bootstrap/", controllers.PublicBootstrap)
			public.GET("/products/", controllers.PublicProducts)
			public.GET("/products/:id/", controllers.PublicProductDetail)
			public.GET("/blog/", controllers.PublicBlogList)
			public.GET("/blog/:slug/", controllers.PublicBlogDetail)
			public.POST("/newsletter/subscribe/", controllers.SubscribeNewsletter)
			public.POST("/contact/", controllers.ContactSubmit)
			public.POST("/orders/", controllers.CreateOrder)
		}

		momo := api.Group("/momo")
		{
			momo.POST("/initiate/", controllers.InitiateMomoPayment)
			momo.GET("/status/:reference_id/", controllers.MomoStatus)
			momo.POST("/callback/", controllers.MomoCallback)
		}

		api.GET("/download/:token/", controllers.DownloadDigital)

		admin := api.Group("/admin")
		admin.Use(middleware.RequireAdmin(cfg))
		{
			admin.GET("/dashboard/", controllers.AdminDashboard)

			admin.GET("/profile/me/", controllers.AdminProfileMe)
			admin.PUT("/profile/update/", controllers.AdminProfileUpdate)
			admin.POST("/profile/change-password/", controllers.AdminChangePassword)

			admin.GET("/settings/", controllers.AdminSettings)
			admin.PUT("/settings/", controllers.AdminSettings)
			admin.POST("/settings/reset-visits/", controllers.AdminResetVisits)

			admin.GET("/notifications/", controllers.AdminNotifications)
			admin.GET("/notifications/:id/", controllers.NotificationDetail)
			admin.PATCH("/notifications/:id/", controllers.NotificationDetail)
			admin.DELETE("/notifications/:id/", controllers.NotificationDetail)
			admin.POST("/notifications/:id/mark-read/", controllers.AdminNotificationMarkRead)
			admin.POST("/notifications/mark-all-read/", controllers.AdminNotificationsMarkAllRead)

			admin.GET("/products/", controllers.AdminProducts)
			admin.POST("/products/create/", controllers.AdminProductCreate)
			admin.PUT("/products/:id/", controllers.AdminProductDetail)
			admin.DELETE("/products/:id/", controllers.AdminProductDetail)

			admin.GET("/blog/", controllers.AdminBlogList)
			admin.POST("/blog/create/", controllers.AdminBlogCreate)
			admin.GET("/blog/:id/", controllers.AdminBlogDetail)
			admin.PUT("/blog/:id/", controllers.AdminBlogDetail)
			admin.DELETE("/blog/:id/", controllers.AdminBlogDetail)

			admin.GET("/orders/", controllers.AdminOrders)
			admin.POST("/orders/:id/mark-paid/", controllers.AdminMarkPaid)

			admin.GET("/newsletter/", controllers.AdminNewsletter)
			admin.POST("/newsletter/send-test/", controllers.AdminSendTestEmail)
			admin.POST("/newsletter/send/", controllers.AdminSendNewsletter)
			admin.GET("/newsletter/campaigns/", controllers.AdminEmailCampaigns)

			admin.GET("/contacts/", controllers.AdminContacts)
			admin.POST("/contacts/:id/mark-read/", controllers.AdminContactMarkRead)

			admin.GET("/reports/sales/", controllers.SalesReport)
			admin.GET("/reports/products/", controllers.ProductsReport)
		}
	}

	return router
}

// seedAdminUser creates the first admin account from ADMIN_USERNAME and
// ADMIN_PASSWORD when no admin exists yet
func seedAdminUser() {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return
	}

	db := config.GetDB()
	var count int64
	db.Model(&models.AdminUser{}).Count(&count)
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}
	admin := models.AdminUser{
		Username:     username,
		Email:        os.Getenv("ADMIN_EMAIL"),
		PasswordHash: string(hash),
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin user: %v", err)
		return
	}
	log.Printf("Seeded admin user %q", username)
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Neesté API is running",
	})
}

// databaseStatus checks database connectivity
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
	})
}
