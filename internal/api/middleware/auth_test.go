package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	tokens := &mocks.MockTokenStore{
		ResolveFn: func(_ context.Context, token string) (uuid.UUID, bool) {
			if token == "valid-token" {
				return userID, true
			}
			return uuid.Nil, false
		},
	}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{name: "valid token", authHeader: "Bearer valid-token", expectedStatus: http.StatusOK},
		{name: "lowercase scheme", authHeader: "bearer valid-token", expectedStatus: http.StatusOK},
		{name: "missing auth header", authHeader: "", expectedStatus: http.StatusUnauthorized},
		{name: "no scheme", authHeader: "valid-token", expectedStatus: http.StatusUnauthorized},
		{name: "wrong scheme", authHeader: "Basic valid-token", expectedStatus: http.StatusUnauthorized},
		{name: "empty token", authHeader: "Bearer ", expectedStatus: http.StatusUnauthorized},
		{name: "unknown token", authHeader: "Bearer forged", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var capturedUserID uuid.UUID
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				capturedUserID, _ = GetUserID(r)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			NewAuthMiddleware(tokens).Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, userID, capturedUserID)
			} else {
				assert.Equal(t, uuid.Nil, capturedUserID, "next handler must not run")
				assert.Contains(t, rec.Body.String(), "Could not validate credentials")
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	_, err := bearerToken("")
	assert.ErrorIs(t, err, auth.ErrMissingToken)

	_, err = bearerToken("Token abc")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	token, err := bearerToken("Bearer  abc ")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestGetUserID(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(shared.WithUserID(req.Context(), id))

	got, ok := GetUserID(req)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = GetUserID(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestNewAuthMiddlewarePanicsWithoutTokenStore(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewAuthMiddleware(nil) })
}
