package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/neeste/neeste-api/config"
)

const (
	// momoRequestTimeout is the fixed timeout for all provider calls
	momoRequestTimeout = 60 * time.Second
	// tokenValidityMargin is the minimum remaining validity before the cached
	// bearer token is refreshed
	tokenValidityMargin = 30 * time.Second
	// messageFieldLimit is the provider's limit on payer/payee message fields
	messageFieldLimit = 160
)

// MoMoInterface defines the interface for MTN MoMo collection operations
type MoMoInterface interface {
	GetAccessToken() (string, error)
	RequestToPay(amount int64, currency, phone, externalID, payerMessage, payeeNote string) (string, int, map[string]interface{}, error)
	GetRequestStatus(referenceID string) (int, map[string]interface{}, error)
}

// MoMoService talks to the MTN MoMo collection API. The bearer token cache
// lives on the instance and is guarded by a mutex; concurrent refreshes at
// worst perform a redundant token exchange.
type MoMoService struct {
	baseURL         string
	targetEnv       string
	subscriptionKey string
	apiUser         string
	apiKey          string
	callbackURL     string
	httpClient      *http.Client

	mu          sync.Mutex
	cachedToken string
	tokenExpiry time.Time
}

var momoServiceInstance MoMoInterface

// InitMoMoService initializes the MoMo service from configuration
func InitMoMoService(cfg *config.Config) MoMoInterface {
	momoServiceInstance = NewMoMoService(cfg)
	return momoServiceInstance
}

// NewMoMoService creates a MoMo client from configuration
func NewMoMoService(cfg *config.Config) *MoMoService {
	return &MoMoService{
		baseURL:         cfg.MomoBaseURL,
		targetEnv:       cfg.MomoTargetEnv,
		subscriptionKey: cfg.MomoSubscriptionKey,
		apiUser:         cfg.MomoAPIUser,
		apiKey:          cfg.MomoAPIKey,
		callbackURL:     cfg.MomoCallbackURL,
		httpClient: &http.Client{
			Timeout: momoRequestTimeout,
		},
	}
}

// GetMoMoService returns the initialized MoMo service instance
func GetMoMoService() MoMoInterface {
	return momoServiceInstance
}

// SetMoMoService sets the MoMo service instance (primarily for testing)
func SetMoMoService(service MoMoInterface) {
	momoServiceInstance = service
}

// doRequest performs one HTTP call against the provider and decodes the JSON
// body into a map. Non-JSON bodies are returned under the "raw" key.
func (s *MoMoService) doRequest(method, url string, headers map[string]string, payload interface{}) (int, map[string]interface{}, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("momo request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read momo response: %w", err)
	}

	result := map[string]interface{}{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &result); err != nil {
			result = map[string]interface{}{"raw": string(raw)}
		}
	}
	return resp.StatusCode, result, nil
}

// GetAccessToken returns a cached bearer token while it has more than 30
// seconds of validity left; otherwise it performs a basic-auth credential
// exchange against the provider and caches the result.
func (s *MoMoService) GetAccessToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cachedToken != "" && time.Until(s.tokenExpiry) > tokenValidityMargin {
		return s.cachedToken, nil
	}

	if s.apiUser == "" || s.apiKey == "" || s.subscriptionKey == "" {
		return "", fmt.Errorf("momo credentials missing: MOMO_API_USER/MOMO_API_KEY/MOMO_COLLECTION_SUB_KEY")
	}

	basic := base64.StdEncoding.EncodeToString([]byte(s.apiUser + ":" + s.apiKey))
	status, payload, err := s.doRequest(http.MethodPost, s.baseURL+"/collection/token/", map[string]string{
		"Authorization":             "Basic " + basic,
		"Ocp-Apim-Subscription-Key": s.subscriptionKey,
	}, nil)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return "", fmt.Errorf("failed to get momo token: %d %v", status, payload)
	}

	token, _ := payload["access_token"].(string)
	if token == "" {
		return "", fmt.Errorf("momo token response missing access_token: %v", payload)
	}
	expiresIn := 3600.0
	if v, ok := payload["expires_in"].(float64); ok {
		expiresIn = v
	}

	s.cachedToken = token
	s.tokenExpiry = time.Now().Add(time.Duration(expiresIn) * time.Second)
	return token, nil
}

// RequestToPay initiates a request-to-pay against the provider. The provider
// processes it out-of-band; the outcome is observed later via a status poll
// or callback. Returns the generated correlation id plus the raw HTTP status
// and response body with no interpretation of success or failure.
func (s *MoMoService) RequestToPay(amount int64, currency, phone, externalID, payerMessage, payeeNote string) (string, int, map[string]interface{}, error) {
	referenceID := uuid.New().String()

	token, err := s.GetAccessToken()
	if err != nil {
		return "", 0, nil, err
	}

	headers := map[string]string{
		"Authorization":             "Bearer " + token,
		"X-Reference-Id":            referenceID,
		"X-Target-Environment":      s.targetEnv,
		"Ocp-Apim-Subscription-Key": s.subscriptionKey,
	}
	if s.callbackURL != "" {
		headers["X-Callback-Url"] = s.callbackURL
	}

	payload := map[string]interface{}{
		"amount":     fmt.Sprintf("%d", amount),
		"currency":   currency,
		"externalId": externalID,
		"payer": map[string]string{
			"partyIdType": "MSISDN",
			"partyId":     phone,
		},
		"payerMessage": truncate(payerMessage, messageFieldLimit),
		"payeeNote":    truncate(payeeNote, messageFieldLimit),
	}

	status, body, err := s.doRequest(http.MethodPost, s.baseURL+"/collection/v1_0/requesttopay", headers, payload)
	if err != nil {
		return "", 0, nil, err
	}
	return referenceID, status, body, nil
}

// GetRequestStatus polls the provider for the current state of a previously
// submitted request-to-pay. Returns the raw HTTP status and body.
func (s *MoMoService) GetRequestStatus(referenceID string) (int, map[string]interface{}, error) {
	token, err := s.GetAccessToken()
	if err != nil {
		return 0, nil, err
	}

	headers := map[string]string{
		"Authorization":             "Bearer " + token,
		"X-Target-Environment":      s.targetEnv,
		"Ocp-Apim-Subscription-Key": s.subscriptionKey,
	}
	return s.doRequest(http.MethodGet, s.baseURL+"/collection/v1_0/requesttopay/"+referenceID, headers, nil)
}

func truncate(s string, limit int) string {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
