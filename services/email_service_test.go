package services

import (
	"testing"

	"github.com/neeste/neeste-api/models"
	"github.com/stretchr/testify/assert"
)

func TestStripTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"nested tags", "<p>Hello <b>there</b></p>", "Hello there"},
		{"no tags", "plain text", "plain text"},
		{"attributes", `<a href="https://example.com">link</a>`, "link"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripTags(tt.input))
		})
	}
}

func TestEmailSendUnconfigured(t *testing.T) {
	service := &EmailService{}
	settings := &models.SiteSettings{}

	err := service.Send(settings, "someone@example.com", "Test", "<p>hi</p>")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
