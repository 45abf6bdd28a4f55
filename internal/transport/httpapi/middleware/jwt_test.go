package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook/finbook/internal/transport/httpapi/middleware"
)

const testSecret = "test-secret-that-is-long-enough-for-hs256"

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := middleware.NewJWTService(testSecret)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "finbook", claims.Issuer)
}

func TestJWTService_ValidateRejectsWrongSecret(t *testing.T) {
	token, err := middleware.NewJWTService(testSecret).GenerateToken(uuid.New(), "alice@example.com")
	require.NoError(t, err)

	_, err = middleware.NewJWTService("a-completely-different-secret-value").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ValidateRejectsGarbage(t *testing.T) {
	svc := middleware.NewJWTService(testSecret)

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestJWTService_RefreshToken(t *testing.T) {
	svc := middleware.NewJWTService(testSecret)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "alice@example.com")
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(token)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(refreshed)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestJWTMiddleware(t *testing.T) {
	svc := middleware.NewJWTService(testSecret)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "alice@example.com")
	require.NoError(t, err)

	var gotUserID uuid.UUID
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = middleware.GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.JWTMiddleware(svc)(next)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token " + token, http.StatusUnauthorized},
		{"invalid token", "Bearer bogus", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID, gotOK = uuid.Nil, false

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				require.True(t, gotOK)
				assert.Equal(t, userID, gotUserID)
			} else {
				assert.False(t, gotOK)
			}
		})
	}
}
