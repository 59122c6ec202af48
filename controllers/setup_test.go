package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/neeste/neeste-api/config"
	"github.com/neeste/neeste-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTest opens a fresh in-memory database, wires it into the config
// package, and installs a test configuration. Each test gets isolated state.
func setupTest(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open in-memory database")

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
	require.NoError(t, err, "Failed to migrate test database")

	config.SetDB(db)
	config.SetConfig(&config.Config{
		GoEnv:               "test",
		JWTSecret:           "test-secret",
		MomoBaseURL:         "http://momo.test",
		MomoTargetEnv:       "sandbox",
		MomoSubscriptionKey: "sub-key",
		MomoAPIUser:         "api-user",
		MomoAPIKey:          "api-key",
	})
	return db
}

// performRequest runs one request through the router and returns the recorder.
// A non-nil body is JSON-encoded.
func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a recorded JSON response into a map
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "Response should be valid JSON")
	return body
}

// errorCode extracts error.code from the standard error envelope
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, w)
	errObj, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "Response should carry an error envelope")
	code, _ := errObj["code"].(string)
	return code
}
