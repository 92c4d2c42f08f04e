package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// EmployeeStore defines the interface for employee persistence.
type EmployeeStore interface {
	// Create saves a new employee record.
	// Returns ErrEmployeeExists if the user already has an employee record.
	// Returns ErrInvalidEntity if the user or department does not exist.
	Create(ctx context.Context, employee *domain.Employee) error

	// GetByID retrieves an employee by its unique ID.
	// Returns ErrEmployeeNotFound if the employee does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)

	// GetByUserID retrieves the employee record linked to a user.
	// Returns ErrEmployeeNotFound if the user has none.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Employee, error)

	// WithTx returns a new EmployeeStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) EmployeeStore
}

// DepartmentStore defines the interface for department persistence.
type DepartmentStore interface {
	// Create saves a new department.
	// Returns ErrDepartmentExists if a department with the same name exists.
	Create(ctx context.Context, department *domain.Department) error

	// GetByName retrieves a department by its name.
	// Returns ErrDepartmentNotFound if the department does not exist.
	GetByName(ctx context.Context, name string) (*domain.Department, error)

	// WithTx returns a new DepartmentStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) DepartmentStore
}
