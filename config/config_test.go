package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:    "missing database url",
			config:  Config{JWTSecret: "secret"},
			wantErr: "DATABASE_URL is required",
		},
		{
			name:    "missing jwt secret",
			config:  Config{DatabaseURL: "postgres://localhost/db"},
			wantErr: "JWT_SECRET is required",
		},
		{
			name:   "valid",
			config: Config{DatabaseURL: "postgres://localhost/db", JWTSecret: "secret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestHasMomoCredentials(t *testing.T) {
	config := Config{}
	assert.False(t, config.HasMomoCredentials(), "Empty config should have no credentials")

	config.MomoAPIUser = "user"
	config.MomoAPIKey = "key"
	assert.False(t, config.HasMomoCredentials(), "Subscription key still missing")

	config.MomoSubscriptionKey = "sub"
	assert.True(t, config.HasMomoCredentials())
}

func TestEnvironmentHelpers(t *testing.T) {
	config := Config{GoEnv: "production"}
	assert.True(t, config.IsProduction())
	assert.False(t, config.IsTest())
	assert.False(t, config.IsDevelopment())

	config.GoEnv = "test"
	assert.True(t, config.IsTest())

	config.GoEnv = "development"
	assert.True(t, config.IsDevelopment())
}

func TestGetEnv(t *testing.T) {
	t.Setenv("SOME_TEST_KEY", "value")
	assert.Equal(t, "value", getEnv("SOME_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", getEnv("SOME_MISSING_KEY", "fallback"))
}

func TestSetConfig(t *testing.T) {
	original := GetConfig()
	defer SetConfig(original)

	config := &Config{Port: "9999"}
	SetConfig(config)
	assert.Equal(t, config, GetConfig())
}
