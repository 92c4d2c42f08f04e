package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// PostgresEmployeeStore implements the store.EmployeeStore interface.
type PostgresEmployeeStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEmployeeStore creates a new EmployeeStore backed by db.
// If logger is nil, a default logger will be used.
func NewPostgresEmployeeStore(db store.DBTX, logger *slog.Logger) *PostgresEmployeeStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresEmployeeStore{
		db:     db,
		logger: logger.With(slog.String("component", "employee_store")),
	}
}

// Ensure PostgresEmployeeStore implements store.EmployeeStore interface
var _ store.EmployeeStore = (*PostgresEmployeeStore)(nil)

// WithTx implements store.EmployeeStore.WithTx
func (s *PostgresEmployeeStore) WithTx(tx *sql.Tx) store.EmployeeStore {
	return &PostgresEmployeeStore{db: tx, logger: s.logger}
}

// Create implements store.EmployeeStore.Create
func (s *PostgresEmployeeStore) Create(ctx context.Context, emp *domain.Employee) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO employees (id, user_id, employee_code, name, department_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		emp.ID,
		emp.UserID,
		emp.EmployeeCode,
		emp.Name,
		emp.DepartmentID,
		emp.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("user already has an employee record",
				slog.String("user_id", emp.UserID.String()))
			return store.ErrEmployeeExists
		}
		log.Error("failed to create employee",
			slog.String("error", err.Error()),
			slog.String("employee_id", emp.ID.String()))
		return MapError(err)
	}

	log.Debug("employee created",
		slog.String("employee_id", emp.ID.String()),
		slog.String("user_id", emp.UserID.String()))
	return nil
}

// GetByID implements store.EmployeeStore.GetByID
func (s *PostgresEmployeeStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	return s.getOne(ctx, `WHERE id = $1`, id)
}

// GetByUserID implements store.EmployeeStore.GetByUserID
func (s *PostgresEmployeeStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Employee, error) {
	return s.getOne(ctx, `WHERE user_id = $1`, userID)
}

func (s *PostgresEmployeeStore) getOne(ctx context.Context, where string, arg any) (*domain.Employee, error) {
	query := `SELECT id, user_id, employee_code, name, department_id, created_at FROM employees ` + where

	var emp domain.Employee
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&emp.ID,
		&emp.UserID,
		&emp.EmployeeCode,
		&emp.Name,
		&emp.DepartmentID,
		&emp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrEmployeeNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get employee",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	emp.CreatedAt = emp.CreatedAt.UTC()
	return &emp, nil
}

// PostgresDepartmentStore implements the store.DepartmentStore interface.
type PostgresDepartmentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDepartmentStore creates a new DepartmentStore backed by db.
func NewPostgresDepartmentStore(db store.DBTX, logger *slog.Logger) *PostgresDepartmentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDepartmentStore{
		db:     db,
		logger: logger.With(slog.String("component", "department_store")),
	}
}

var _ store.DepartmentStore = (*PostgresDepartmentStore)(nil)

// WithTx implements store.DepartmentStore.WithTx
func (s *PostgresDepartmentStore) WithTx(tx *sql.Tx) store.DepartmentStore {
	return &PostgresDepartmentStore{db: tx, logger: s.logger}
}

// Create implements store.DepartmentStore.Create
func (s *PostgresDepartmentStore) Create(ctx context.Context, dept *domain.Department) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO departments (id, name) VALUES ($1, $2)`, dept.ID, dept.Name)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrDepartmentExists
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create department",
			slog.String("error", err.Error()),
			slog.String("department", dept.Name))
		return MapError(err)
	}
	return nil
}

// GetByName implements store.DepartmentStore.GetByName
func (s *PostgresDepartmentStore) GetByName(ctx context.Context, name string) (*domain.Department, error) {
	var dept domain.Department
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM departments WHERE name = $1`, name).Scan(&dept.ID, &dept.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrDepartmentNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get department",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return &dept, nil
}
