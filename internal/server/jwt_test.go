package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yassine/cvbuilder/internal/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing-minimum-32-bytes",
		ExpirationHours: 24,
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := newTestJWTService()
	userID := uuid.New()

	token, err := service.GenerateToken(userID)
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(token, ".")), "compact JWT has three segments")

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.NotNil(t, claims.ExpiresAt)
	assert.NotNil(t, claims.IssuedAt)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	service := newTestJWTService()
	other := NewJWTService(&config.JWTConfig{
		Secret:          "a-different-secret-key-for-jwt-signing-32-bytes",
		ExpirationHours: 24,
	})

	token, err := other.GenerateToken(uuid.New())
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_RejectsMalformedTokens(t *testing.T) {
	service := newTestJWTService()

	for _, token := range []string{
		"",
		"invalid",
		"invalid.token",
		"invalid.token.format.extra",
	} {
		claims, err := service.ValidateToken(token)
		assert.Error(t, err, "token %q", token)
		assert.Nil(t, claims)
	}
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	service := newTestJWTService()
	userID := uuid.New()

	past := time.Now().Add(-time.Hour)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past),
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Hour)),
			NotBefore: jwt.NewNumericDate(past.Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(service.config.Secret))
	require.NoError(t, err)

	got, err := service.ValidateToken(signed)
	assert.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "expired")
}
