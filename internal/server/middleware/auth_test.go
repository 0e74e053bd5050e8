package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeValidator accepts a fixed token and rejects everything else.
type fakeValidator struct {
	token  string
	userID uuid.UUID
}

func (v *fakeValidator) ValidateToken(tokenString string) (UserIDGetter, error) {
	if tokenString != v.token {
		return nil, fmt.Errorf("invalid token")
	}
	return &fakeClaims{userID: v.userID}, nil
}

type fakeClaims struct {
	userID uuid.UUID
}

func (c *fakeClaims) GetUserID() uuid.UUID { return c.userID }

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	validator := &fakeValidator{token: "session-token-abc", userID: userID}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "valid token", authHeader: "Bearer session-token-abc", wantStatus: http.StatusOK},
		{name: "case-insensitive scheme", authHeader: "bearer session-token-abc", wantStatus: http.StatusOK},
		{name: "no header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "missing scheme", authHeader: "session-token-abc", wantStatus: http.StatusUnauthorized},
		{name: "scheme without token", authHeader: "Bearer", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", authHeader: "Bearer forged-token", wantStatus: http.StatusUnauthorized},
		{name: "malformed jwt", authHeader: "Bearer not.a.valid.jwt.token", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			var seenUserID uuid.UUID
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				id, err := GetUserID(r)
				require.NoError(t, err)
				seenUserID = id
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/wizard/sessions", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			AuthMiddleware(validator)(handler).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.True(t, handlerCalled)
				assert.Equal(t, userID, seenUserID)
			} else {
				assert.False(t, handlerCalled, "handler must not run without a valid token")
				assert.Contains(t, w.Body.String(), "Unauthorized")
			}
		})
	}
}

func TestGetUserID(t *testing.T) {
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/resumes", nil)
	req = req.WithContext(context.WithValue(req.Context(), userIDKey, userID))

	got, err := GetUserID(req)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestGetUserID_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/resumes", nil)

	got, err := GetUserID(req)
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, got)
}
