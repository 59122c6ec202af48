package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/neeste/neeste-api/models"
	"github.com/neeste/neeste-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func downloadRouter() *gin.Engine {
	router := gin.New()
	router.GET("/api/download/:token/", DownloadDigital)
	return router
}

// seedDownload creates a paid order holding one digital product and an issued
// access token, with the file present in mock storage
func seedDownload(t *testing.T, db *gorm.DB, storage *services.MockStorageService) models.DigitalAccessToken {
	t.Helper()
	_, digital := seedProducts(t, db)
	storage.PutFile(*digital.FileKey, []byte("pdf-bytes"))

	order := models.Order{
		Reference: "DLREF00001",
		FullName:  "Jane Doe",
		Phone:     "256700000001",
		Status:    models.OrderStatusPaid,
	}
	require.NoError(t, db.Create(&order).Error)

	token := models.DigitalAccessToken{
		OrderID:   order.ID,
		ProductID: digital.ID,
		Token:     "test-download-token",
	}
	require.NoError(t, db.Create(&token).Error)
	return token
}

func TestDownloadDigital(t *testing.T) {
	db := setupTest(t)
	storage := services.NewMockStorageService()
	storage.SetAsMockForTesting()
	token := seedDownload(t, db, storage)
	router := downloadRouter()

	w := performRequest(router, "GET", "/api/download/"+token.Token+"/", nil)

	require.Equal(t, http.StatusOK, w.Code, "Response: %s", w.Body.String())
	assert.Equal(t, "pdf-bytes", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "guide.pdf")
}

func TestDownloadDigitalUnknownToken(t *testing.T) {
	setupTest(t)
	services.NewMockStorageService().SetAsMockForTesting()
	router := downloadRouter()

	w := performRequest(router, "GET", "/api/download/no-such-token/", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestDownloadDigitalUnpaidOrder(t *testing.T) {
	db := setupTest(t)
	storage := services.NewMockStorageService()
	storage.SetAsMockForTesting()
	token := seedDownload(t, db, storage)

	// Force the owning order back to CREATED; the token alone must not unlock
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", token.OrderID).
		Update("status", models.OrderStatusCreated).Error)

	router := downloadRouter()
	w := performRequest(router, "GET", "/api/download/"+token.Token+"/", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestDownloadDigitalMissingFile(t *testing.T) {
	db := setupTest(t)
	storage := services.NewMockStorageService()
	storage.SetAsMockForTesting()
	token := seedDownload(t, db, storage)
	storage.Clear()

	router := downloadRouter()
	w := performRequest(router, "GET", "/api/download/"+token.Token+"/", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}
