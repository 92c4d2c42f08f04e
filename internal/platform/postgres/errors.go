package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/taskboard-api/internal/store"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is the PostgreSQL error code for foreign key violations
	foreignKeyViolationCode = "23503"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"
)

// violation classifies constraint errors of either backend.
type violation int

const (
	noViolation violation = iota
	uniqueViolation
	foreignKeyViolation
	checkViolation
	notNullViolation
)

// classify inspects a driver error. The second result names the violated
// constraint or column when the driver reports it.
func classify(err error) (violation, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return uniqueViolation, pgErr.ConstraintName
		case foreignKeyViolationCode:
			return foreignKeyViolation, pgErr.ConstraintName
		case checkViolationCode:
			return checkViolation, pgErr.ConstraintName
		case notNullViolationCode:
			return notNullViolation, pgErr.ColumnName
		}
		return noViolation, ""
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return uniqueViolation, ""
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return foreignKeyViolation, ""
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return checkViolation, ""
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return notNullViolation, ""
		}
	}

	return noViolation, ""
}

// MapError maps a database error to an appropriate store error.
// Constraint violations are translated without wrapping the driver error, so
// driver details (statements, values) cannot leak past the store layer.
// Errors without a specific mapping are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	kind, name := classify(err)
	switch kind {
	case uniqueViolation:
		return fmt.Errorf("%w: unique violation%s", store.ErrDuplicate, suffix(name))
	case foreignKeyViolation:
		return fmt.Errorf("%w: foreign key violation%s", store.ErrInvalidEntity, suffix(name))
	case checkViolation:
		return fmt.Errorf("%w: check constraint violation%s", store.ErrInvalidEntity, suffix(name))
	case notNullViolation:
		return fmt.Errorf("%w: not null violation%s", store.ErrInvalidEntity, suffix(name))
	}

	return err
}

func suffix(name string) string {
	if name == "" {
		return ""
	}
	return " (" + name + ")"
}

// IsUniqueViolation checks if the given error is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	kind, _ := classify(err)
	return kind == uniqueViolation
}

// IsForeignKeyViolation checks if the given error is a foreign key constraint violation.
func IsForeignKeyViolation(err error) bool {
	kind, _ := classify(err)
	return kind == foreignKeyViolation
}

// IsCheckConstraintViolation checks if the given error is a check constraint violation.
func IsCheckConstraintViolation(err error) bool {
	kind, _ := classify(err)
	return kind == checkViolation
}

// IsNotNullViolation checks if the given error is a not null constraint violation.
func IsNotNullViolation(err error) bool {
	kind, _ := classify(err)
	return kind == notNullViolation
}

// CheckRowsAffected examines the number of rows affected by a database operation.
// If no rows were affected, it returns notFound (store.ErrNotFound when nil).
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if notFound == nil {
			return store.ErrNotFound
		}
		return notFound
	}

	return nil
}

// MapUniqueViolation maps a unique violation to specificError. Other errors
// go through MapError.
func MapUniqueViolation(err error, specificError error) error {
	if !IsUniqueViolation(err) {
		return MapError(err)
	}
	return specificError
}
