package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/neeste/neeste-api/config"
	"github.com/neeste/neeste-api/models"
)

// TokenLifetime is how long an issued admin token stays valid
const TokenLifetime = 24 * time.Hour

// adminContextKey is the gin context key under which the authenticated admin is stored
const adminContextKey = "admin_user"

// GenerateToken mints an HMAC-signed JWT for an admin username
func GenerateToken(cfg *config.Config, username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a token string and returns the subject username
func ParseToken(cfg *config.Config, tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	return claims.Subject, nil
}

// RequireAdmin is a middleware that validates the Bearer token and loads the
// admin user into the request context
func RequireAdmin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Missing or malformed Authorization header",
				},
			})
			return
		}

		username, err := ParseToken(cfg, strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid or expired token",
				},
			})
			return
		}

		var admin models.AdminUser
		if err := config.GetDB().Where("username = ?", username).First(&admin).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Unknown user",
				},
			})
			return
		}

		c.Set(adminContextKey, &admin)
		c.Next()
	}
}

// GetAdminUser extracts the authenticated admin from the gin context
func GetAdminUser(c *gin.Context) (*models.AdminUser, error) {
	value, exists := c.Get(adminContextKey)
	if !exists {
		return nil, fmt.Errorf("no authenticated admin in context")
	}
	admin, ok := value.(*models.AdminUser)
	if !ok {
		return nil, fmt.Errorf("unexpected admin context value")
	}
	return admin, nil
}
