package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_LoginAndMe(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)
	ctx := context.Background()

	role, err := domain.NewRole("employee")
	require.NoError(t, err)
	require.NoError(t, a.stores.RoleStore.Create(ctx, role))
	user := testutils.MustInsertUser(ctx, t, a.stores, "someone@example.com")
	user.RoleID = &role.ID
	require.NoError(t, a.stores.UserStore.Update(ctx, user))

	rec := a.do(t, http.MethodPost, "/login",
		LoginRequest{Email: "someone@example.com", Password: testutils.TestPassword}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login LoginResponse
	decodeBody(t, rec, &login)

	rec = a.do(t, http.MethodGet, "/me", nil, login.Token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var profile ProfileResponse
	decodeBody(t, rec, &profile)
	assert.Equal(t, ProfileResponse{ID: user.ID, Email: "someone@example.com", Role: "employee"}, profile)
}

func TestAuthHandler_LoginErrors(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)
	testutils.MustInsertUser(context.Background(), t, a.stores, "known@example.com")

	tests := []struct {
		name   string
		body   interface{}
		status int
	}{
		{
			name:   "wrong password",
			body:   LoginRequest{Email: "known@example.com", Password: "wrong"},
			status: http.StatusUnauthorized,
		},
		{
			name:   "unknown email",
			body:   LoginRequest{Email: "ghost@example.com", Password: testutils.TestPassword},
			status: http.StatusUnauthorized,
		},
		{
			name:   "identifier that is not an email",
			body:   LoginRequest{Email: "not-an-email", Password: "x"},
			status: http.StatusUnauthorized,
		},
		{
			name:   "missing password",
			body:   map[string]string{"email": "known@example.com"},
			status: http.StatusUnprocessableEntity,
		},
		{name: "malformed json", body: `{"email"`, status: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := a.do(t, http.MethodPost, "/login", tc.body, "")
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
			if tc.status == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), "Incorrect email or password")
			}
		})
	}
}

func TestAuthHandler_MeRejectsBadTokens(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)

	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodGet, "/me", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodGet, "/me", nil, "forged").Code)
}

func TestAuthHandler_MeForDeletedUser(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	tokens := &mocks.MockTokenStore{
		ResolveFn: func(context.Context, string) (uuid.UUID, bool) { return userID, true },
	}
	a := newTestAPIWithTokens(t, tokens)

	rec := a.do(t, http.MethodGet, "/me", nil, "stale")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_TokenIssueFailure(t *testing.T) {
	t.Parallel()

	tokens := &mocks.MockTokenStore{
		IssueFn: func(context.Context, uuid.UUID) (string, error) {
			return "", errors.New("entropy exhausted")
		},
	}
	a := newTestAPIWithTokens(t, tokens)
	testutils.MustInsertUser(context.Background(), t, a.stores, "unlucky@example.com")

	rec := a.do(t, http.MethodPost, "/login",
		LoginRequest{Email: "unlucky@example.com", Password: testutils.TestPassword}, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to generate authentication token")
	assert.NotContains(t, rec.Body.String(), "entropy")
}
