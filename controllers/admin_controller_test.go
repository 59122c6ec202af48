package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/neeste/neeste-api/config"
	"github.com/neeste/neeste-api/middleware"
	"github.com/neeste/neeste-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// adminAuthedRouter wires the admin surface behind the real middleware and
// returns a router plus a valid bearer token
func adminAuthedRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	db := config.GetDB()
	admin := seedAdmin(t, db, "admin", "s3cret")
	cfg := config.GetConfig()

	token, err := middleware.GenerateToken(cfg, admin.Username)
	require.NoError(t, err)

	router := gin.New()
	group := router.Group("/api/admin")
	group.Use(middleware.RequireAdmin(cfg))
	group.GET("/dashboard/", AdminDashboard)
	group.GET("/profile/me/", AdminProfileMe)
	group.PUT("/profile/update/", AdminProfileUpdate)
	group.POST("/profile/change-password/", AdminChangePassword)
	group.GET("/settings/", AdminSettings)
	group.PUT("/settings/", AdminSettings)
	group.POST("/settings/reset-visits/", AdminResetVisits)
	group.GET("/notifications/", AdminNotifications)
	group.POST("/notifications/:id/mark-read/", AdminNotificationMarkRead)
	group.POST("/notifications/mark-all-read/", AdminNotificationsMarkAllRead)
	group.DELETE("/notifications/:id/", NotificationDetail)
	return router, token
}

func performAuthed(router *gin.Engine, token, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminDashboard(t *testing.T) {
	db := setupTest(t)
	router, token := adminAuthedRouter(t)
	seedReportData(t, db)

	w := performAuthed(router, token, "GET", "/api/admin/dashboard/", nil)

	require.Equal(t, http.StatusOK, w.Code, "Response: %s", w.Body.String())
	body := decodeBody(t, w)

	revenue := body["revenue"].(map[string]interface{})
	assert.Equal(t, float64(7000), revenue["total"])
	assert.Equal(t, "UGX", revenue["currency"])

	orders := body["orders"].(map[string]interface{})
	assert.Equal(t, float64(2), orders["total"])
	assert.Equal(t, float64(1), orders["paid"])
	assert.Equal(t, float64(1), orders["pending"])

	sales := body["product_sales"].([]interface{})
	require.Len(t, sales, 2, "Only paid order lines feed product sales")
	topSeller := sales[0].(map[string]interface{})
	assert.Equal(t, "Care Guide", topSeller["name"])
}

func TestAdminProfileMe(t *testing.T) {
	setupTest(t)
	router, token := adminAuthedRouter(t)

	w := performAuthed(router, token, "GET", "/api/admin/profile/me/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "admin", body["username"])
	assert.NotContains(t, body, "password_hash")
}

func TestAdminProfileUpdate(t *testing.T) {
	db := setupTest(t)
	router, token := adminAuthedRouter(t)

	w := performAuthed(router, token, "PUT", "/api/admin/profile/update/", gin.H{
		"first_name": "Grace",
	})

	require.Equal(t, http.StatusOK, w.Code, "Response: %s", w.Body.String())

	var stored models.AdminUser
	require.NoError(t, db.Where("username = ?", "admin").First(&stored).Error)
	assert.Equal(t, "Grace", stored.FirstName)
	assert.Equal(t, "admin@example.com", stored.Email, "Omitted fields are untouched")
}

func TestAdminChangePassword(t *testing.T) {
	db := setupTest(t)
	router, token := adminAuthedRouter(t)

	w := performAuthed(router, token, "POST", "/api/admin/profile/change-password/", gin.H{
		"current_password": "s3cret",
		"new_password":     "brand-new-pass",
	})

	require.Equal(t, http.StatusOK, w.Code, "Response: %s", w.Body.String())

	var stored models.AdminUser
	require.NoError(t, db.Where("username = ?", "admin").First(&stored).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("brand-new-pass")))
}

func TestAdminChangePasswordWrongCurrent(t *testing.T) {
	setupTest(t)
	router, token := adminAuthedRouter(t)

	w := performAuthed(router, token, "POST", "/api/admin/profile/change-password/", gin.H{
		"current_password": "wrong",
		"new_password":     "brand-new-pass",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, w))
}

func TestAdminSettingsCreatesSingleton(t *testing.T) {
	db := setupTest(t)
	router, token := adminAuthedRouter(t)

	w := performAuthed(router, token, "GET", "/api/admin/settings/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.SiteSettings{}).Count(&count)
	assert.Equal(t, int64(1), count, "First access creates the settings row")

	// A second read reuses the same row
	w = performAuthed(router, token, "GET", "/api/admin/settings/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	db.Model(&models.SiteSettings{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAdminSettingsUpdate(t *testing.T) {
	db := setupTest(t)
	router, token := adminAuthedRouter(t)

	w := performAuthed(router, token, "PUT", "/api/admin/settings/", gin.H{
		"site_title": "New Title",
		"id":         999,
	})

	require.Equal(t, http.StatusOK, w.Code, "Response: %s", w.Body.String())

	var settings models.SiteSettings
	require.NoError(t, db.First(&settings).Error)
	assert.Equal(t, "New Title", settings.SiteTitle)
	assert.NotEqual(t, uint(999), settings.ID, "The primary key cannot be reassigned")
}

func TestAdminResetVisits(t *testing.T) {
	db := setupTest(t)
	router, token := adminAuthedRouter(t)
	require.NoError(t, db.Exec("INSERT INTO site_visits (date, count) VALUES ('2026-08-30', 5), ('2026-08-31', 7)").Error)

	w := performAuthed(router, token, "POST", "/api/admin/settings/reset-visits/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Reset 2 records", body["message"])

	var count int64
	db.Model(&models.SiteVisit{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAdminNotificationsFeed(t *testing.T) {
	db := setupTest(t)
	router, token := adminAuthedRouter(t)
	notifications := []models.Notification{
		{Type: models.NotificationNewOrder, Title: "New Order #A", Message: "m"},
		{Type: models.NotificationContactSubmission, Title: "Contact", Message: "m"},
	}
	require.NoError(t, db.Create(&notifications).Error)

	w := performAuthed(router, token, "GET", "/api/admin/notifications/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["unread_count"])
	results := body["results"].([]interface{})
	assert.Len(t, results, 2)
}

func TestAdminNotificationMarkRead(t *testing.T) {
	db := setupTest(t)
	router, token := adminAuthedRouter(t)
	notification := models.Notification{Type: models.NotificationNewOrder, Title: "New Order #A", Message: "m"}
	require.NoError(t, db.Create(&notification).Error)

	w := performAuthed(router, token, "POST", "/api/admin/notifications/1/mark-read/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var stored models.Notification
	require.NoError(t, db.First(&stored, notification.ID).Error)
	assert.True(t, stored.Read)
}

func TestAdminNotificationsMarkAllRead(t *testing.T) {
	db := setupTest(t)
	router, token := adminAuthedRouter(t)
	notifications := []models.Notification{
		{Type: models.NotificationNewOrder, Title: "A", Message: "m"},
		{Type: models.NotificationNewOrder, Title: "B", Message: "m"},
	}
	require.NoError(t, db.Create(&notifications).Error)

	w := performAuthed(router, token, "POST", "/api/admin/notifications/mark-all-read/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var unread int64
	db.Model(&models.Notification{}).Where("read = ?", false).Count(&unread)
	assert.Equal(t, int64(0), unread)
}

func TestAdminNotificationDelete(t *testing.T) {
	db := setupTest(t)
	router, token := adminAuthedRouter(t)
	notification := models.Notification{Type: models.NotificationNewOrder, Title: "A", Message: "m"}
	require.NoError(t, db.Create(&notification).Error)

	w := performAuthed(router, token, "DELETE", "/api/admin/notifications/1/", nil)

	require.Equal(t, http.StatusNoContent, w.Code)
	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
