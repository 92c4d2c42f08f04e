package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The password must already be hashed.
	// Returns ErrEmailExists if the email is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies an existing user's email, password hash and role.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email that already exists.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of users.
	Count(ctx context.Context) (int, error)

	// WithTx returns a new UserStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) UserStore
}

// RoleStore defines the interface for role persistence.
type RoleStore interface {
	// Create saves a new role.
	// Returns ErrRoleExists if a role with the same name exists.
	Create(ctx context.Context, role *domain.Role) error

	// GetByID retrieves a role by its unique ID.
	// Returns ErrRoleNotFound if the role does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error)

	// GetByName retrieves a role by its name.
	// Returns ErrRoleNotFound if the role does not exist.
	GetByName(ctx context.Context, name string) (*domain.Role, error)

	// WithTx returns a new RoleStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) RoleStore
}
