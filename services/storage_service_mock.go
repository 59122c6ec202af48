package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"sync"
)

// MockStorageService is a mock implementation of StorageService for testing
type MockStorageService struct {
	uploadedFiles map[string][]byte // map of key to file content
	mu            sync.RWMutex
}

// NewMockStorageService creates a new mock storage service
func NewMockStorageService() *MockStorageService {
	return &MockStorageService{
		uploadedFiles: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global storage service instance
func (m *MockStorageService) SetAsMockForTesting() {
	SetStorageService(m)
}

// UploadFile simulates uploading a file
func (m *MockStorageService) UploadFile(fileHeader *multipart.FileHeader, prefix string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	key := fmt.Sprintf("%s/mock_%s", prefix, filepath.Base(fileHeader.Filename))

	m.mu.Lock()
	m.uploadedFiles[key] = content
	m.mu.Unlock()

	return key, nil
}

// GetPresignedURL simulates generating a presigned URL
func (m *MockStorageService) GetPresignedURL(key string) (string, error) {
	if key == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.uploadedFiles[key]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("file not found in mock storage: %s", key)
	}

	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", key), nil
}

// DownloadFile simulates streaming a stored file
func (m *MockStorageService) DownloadFile(key string) (io.ReadCloser, int64, error) {
	m.mu.RLock()
	content, exists := m.uploadedFiles[key]
	m.mu.RUnlock()

	if !exists {
		return nil, 0, fmt.Errorf("file not found in mock storage: %s", key)
	}

	return io.NopCloser(bytes.NewReader(content)), int64(len(content)), nil
}

// DeleteFile simulates deleting a stored file
func (m *MockStorageService) DeleteFile(key string) error {
	if key == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.uploadedFiles, key)
	m.mu.Unlock()

	return nil
}

// PutFile seeds the mock storage directly (for testing assertions)
func (m *MockStorageService) PutFile(key string, content []byte) {
	m.mu.Lock()
	m.uploadedFiles[key] = content
	m.mu.Unlock()
}

// FileExists checks if a file exists in mock storage
func (m *MockStorageService) FileExists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.uploadedFiles[key]
	return exists
}

// Clear removes all files from mock storage
func (m *MockStorageService) Clear() {
	m.mu.Lock()
	m.uploadedFiles = make(map[string][]byte)
	m.mu.Unlock()
}
