package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// AttendanceStore defines the interface for attendance record persistence.
// There is at most one record per employee and date.
type AttendanceStore interface {
	// Create saves a new attendance record.
	// Returns ErrAttendanceExists if the employee already has a record for the date.
	// Returns validation errors from the domain Attendance if data is invalid.
	Create(ctx context.Context, attendance *domain.Attendance) error

	// GetByID retrieves an attendance record by its unique ID.
	// Returns ErrAttendanceNotFound if the record does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Attendance, error)

	// GetByEmployeeAndDate retrieves the record of an employee for a date.
	// Returns ErrAttendanceNotFound if there is none.
	GetByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*domain.Attendance, error)

	// Update overwrites times, break and notes of an existing record.
	// Returns ErrAttendanceNotFound if the record does not exist.
	Update(ctx context.Context, attendance *domain.Attendance) error

	// ListByEmployee returns the records of an employee ordered by date.
	// A non-nil month restricts the result to dates inside the range.
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, month *domain.MonthRange) ([]*domain.Attendance, error)

	// DeleteOwned removes the record only if it belongs to employeeID.
	// Returns ErrAttendanceNotFound if the record does not exist or is owned by
	// another employee; the two cases are deliberately indistinguishable.
	DeleteOwned(ctx context.Context, id, employeeID uuid.UUID) error

	// WithTx returns a new AttendanceStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) AttendanceStore
}
