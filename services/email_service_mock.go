package services

import (
	"fmt"
	"sync"

	"github.com/neeste/neeste-api/models"
)

// MockEmailService is a mock implementation of the mailer for testing
type MockEmailService struct {
	mu sync.Mutex

	// Sent records every delivered message
	Sent []MockEmail

	// FailFor lists recipient addresses whose delivery should error
	FailFor map[string]bool
}

// MockEmail captures one delivered message
type MockEmail struct {
	To      string
	Subject string
	Content string
}

// NewMockEmailService creates a new mock email service
func NewMockEmailService() *MockEmailService {
	return &MockEmailService{FailFor: make(map[string]bool)}
}

// SetAsMockForTesting sets this mock as the global email service instance
func (m *MockEmailService) SetAsMockForTesting() {
	SetEmailService(m)
}

// Send records the message, or errors for recipients listed in FailFor
func (m *MockEmailService) Send(settings *models.SiteSettings, to, subject, htmlContent string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailFor[to] {
		return fmt.Errorf("mock delivery failure for %s", to)
	}
	m.Sent = append(m.Sent, MockEmail{To: to, Subject: subject, Content: htmlContent})
	return nil
}
