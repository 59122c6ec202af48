package services

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// MockMoMoService is a mock implementation of the MoMo client for testing
type MockMoMoService struct {
	mu sync.Mutex

	// Statuses maps reference ids to the provider status body returned by
	// GetRequestStatus. Unknown references get a 404.
	Statuses map[string]map[string]interface{}

	// RequestToPayStatus is the HTTP status returned by RequestToPay
	RequestToPayStatus int

	// TokenErr, when set, is returned by GetAccessToken and by the
	// operations that depend on it
	TokenErr error

	// Requests records every RequestToPay invocation
	Requests []MockPaymentRequest
}

// MockPaymentRequest captures the arguments of one RequestToPay call
type MockPaymentRequest struct {
	ReferenceID  string
	Amount       int64
	Currency     string
	Phone        string
	ExternalID   string
	PayerMessage string
	PayeeNote    string
}

// NewMockMoMoService creates a new mock MoMo service
func NewMockMoMoService() *MockMoMoService {
	return &MockMoMoService{
		Statuses:           make(map[string]map[string]interface{}),
		RequestToPayStatus: http.StatusAccepted,
	}
}

// SetAsMockForTesting sets this mock as the global MoMo service instance
func (m *MockMoMoService) SetAsMockForTesting() {
	SetMoMoService(m)
}

// GetAccessToken returns a static token unless TokenErr is set
func (m *MockMoMoService) GetAccessToken() (string, error) {
	if m.TokenErr != nil {
		return "", m.TokenErr
	}
	return "mock-access-token", nil
}

// RequestToPay records the call and returns a fresh reference id
func (m *MockMoMoService) RequestToPay(amount int64, currency, phone, externalID, payerMessage, payeeNote string) (string, int, map[string]interface{}, error) {
	if m.TokenErr != nil {
		return "", 0, nil, m.TokenErr
	}

	referenceID := uuid.New().String()
	m.mu.Lock()
	m.Requests = append(m.Requests, MockPaymentRequest{
		ReferenceID:  referenceID,
		Amount:       amount,
		Currency:     currency,
		Phone:        phone,
		ExternalID:   externalID,
		PayerMessage: payerMessage,
		PayeeNote:    payeeNote,
	})
	m.mu.Unlock()

	return referenceID, m.RequestToPayStatus, map[string]interface{}{}, nil
}

// GetRequestStatus returns the configured status body for a reference id
func (m *MockMoMoService) GetRequestStatus(referenceID string) (int, map[string]interface{}, error) {
	if m.TokenErr != nil {
		return 0, nil, m.TokenErr
	}

	m.mu.Lock()
	body, ok := m.Statuses[referenceID]
	m.mu.Unlock()
	if !ok {
		return http.StatusNotFound, map[string]interface{}{"message": "Requesttopay not found"}, nil
	}
	return http.StatusOK, body, nil
}

// SetStatus configures the provider status body for a reference id
func (m *MockMoMoService) SetStatus(referenceID string, body map[string]interface{}) {
	m.mu.Lock()
	m.Statuses[referenceID] = body
	m.mu.Unlock()
}
