package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockUserStore is a mock of store.UserStore interface for use with testify/mock
type TestifyMockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*TestifyMockUserStore)(nil)

// Create is a mock implementation of store.UserStore.Create
func (m *TestifyMockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// GetByID is a mock implementation of store.UserStore.GetByID
func (m *TestifyMockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByEmail is a mock implementation of store.UserStore.GetByEmail
func (m *TestifyMockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.UserStore.Update
func (m *TestifyMockUserStore) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// Delete is a mock implementation of store.UserStore.Delete
func (m *TestifyMockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Count is a mock implementation of store.UserStore.Count
func (m *TestifyMockUserStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// WithTx is a mock implementation of store.UserStore.WithTx
func (m *TestifyMockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	args := m.Called(tx)
	if ret, ok := args.Get(0).(store.UserStore); ok {
		return ret
	}
	return m
}

// TestifyMockRoleStore is a mock of store.RoleStore interface for use with testify/mock
type TestifyMockRoleStore struct {
	mock.Mock
}

var _ store.RoleStore = (*TestifyMockRoleStore)(nil)

// Create is a mock implementation of store.RoleStore.Create
func (m *TestifyMockRoleStore) Create(ctx context.Context, role *domain.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

// GetByID is a mock implementation of store.RoleStore.GetByID
func (m *TestifyMockRoleStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	args := m.Called(ctx, id)
	if role, ok := args.Get(0).(*domain.Role); ok {
		return role, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByName is a mock implementation of store.RoleStore.GetByName
func (m *TestifyMockRoleStore) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	args := m.Called(ctx, name)
	if role, ok := args.Get(0).(*domain.Role); ok {
		return role, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx is a mock implementation of store.RoleStore.WithTx
func (m *TestifyMockRoleStore) WithTx(tx *sql.Tx) store.RoleStore {
	args := m.Called(tx)
	if ret, ok := args.Get(0).(store.RoleStore); ok {
		return ret
	}
	return m
}
