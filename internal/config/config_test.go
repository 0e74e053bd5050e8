package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/cvbuilder_test")
	t.Setenv("GEMINI_API_KEY", "test-api-key")
}

func TestNewServerConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("STRIPE_SECRET_KEY", "")

	cfg, err := NewServerConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.StripeSecretKey)
}

func TestNewServerConfig_AllValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")

	cfg, err := NewServerConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "sk_test_123", cfg.StripeSecretKey)
}

func TestNewServerConfig_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GEMINI_API_KEY", "test-api-key")

	cfg, err := NewServerConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestNewServerConfig_MissingAPIKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/cvbuilder_test")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := NewServerConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestNewServerConfig_InvalidPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "not-a-number")

	_, err := NewServerConfig()
	assert.Error(t, err)

	t.Setenv("PORT", "70000")
	_, err = NewServerConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "port out of range")
}
