package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// MockTokenStore implements auth.TokenStore for testing
type MockTokenStore struct {
	IssueFn   func(ctx context.Context, userID uuid.UUID) (string, error)
	ResolveFn func(ctx context.Context, token string) (uuid.UUID, bool)

	// Token is returned by Issue when IssueFn is nil
	Token string
	// IssuedFor records the user of the last Issue call
	IssuedFor uuid.UUID
}

var _ auth.TokenStore = (*MockTokenStore)(nil)

// Issue implements the auth.TokenStore interface
func (m *MockTokenStore) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	m.IssuedFor = userID
	if m.IssueFn != nil {
		return m.IssueFn(ctx, userID)
	}
	return m.Token, nil
}

// Resolve implements the auth.TokenStore interface
func (m *MockTokenStore) Resolve(ctx context.Context, token string) (uuid.UUID, bool) {
	if m.ResolveFn != nil {
		return m.ResolveFn(ctx, token)
	}
	return uuid.Nil, false
}
