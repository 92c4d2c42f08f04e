package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

const attendanceColumns = `id, employee_id, date, start_time, end_time,
	break_duration_minutes, notes_free_text, created_at, updated_at`

// PostgresAttendanceStore implements the store.AttendanceStore interface.
type PostgresAttendanceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAttendanceStore creates a new AttendanceStore backed by db.
// If logger is nil, a default logger will be used.
func NewPostgresAttendanceStore(db store.DBTX, logger *slog.Logger) *PostgresAttendanceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAttendanceStore{
		db:     db,
		logger: logger.With(slog.String("component", "attendance_store")),
	}
}

// Ensure PostgresAttendanceStore implements store.AttendanceStore interface
var _ store.AttendanceStore = (*PostgresAttendanceStore)(nil)

// WithTx implements store.AttendanceStore.WithTx
func (s *PostgresAttendanceStore) WithTx(tx *sql.Tx) store.AttendanceStore {
	return &PostgresAttendanceStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.AttendanceStore.Create
func (s *PostgresAttendanceStore) Create(ctx context.Context, att *domain.Attendance) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := att.Validate(); err != nil {
		log.Warn("attendance validation failed during create",
			slog.String("error", err.Error()),
			slog.String("attendance_id", att.ID.String()))
		return err
	}

	query := `
		INSERT INTO attendances (id, employee_id, date, start_time, end_time,
			break_duration_minutes, notes_free_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		att.ID,
		att.EmployeeID,
		att.Date,
		att.StartTime,
		att.EndTime,
		att.BreakDurationMinutes,
		att.Notes,
		att.CreatedAt,
		att.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("attendance already recorded for date",
				slog.String("employee_id", att.EmployeeID.String()),
				slog.String("date", domain.FormatDate(att.Date)))
			return store.ErrAttendanceExists
		}
		log.Error("failed to create attendance",
			slog.String("error", err.Error()),
			slog.String("attendance_id", att.ID.String()))
		return MapError(err)
	}

	log.Debug("attendance created",
		slog.String("attendance_id", att.ID.String()),
		slog.String("employee_id", att.EmployeeID.String()),
		slog.String("date", domain.FormatDate(att.Date)))
	return nil
}

// GetByID implements store.AttendanceStore.GetByID
func (s *PostgresAttendanceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Attendance, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE id = $1`

	att, err := scanAttendance(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("attendance not found", slog.String("attendance_id", id.String()))
			return nil, store.ErrAttendanceNotFound
		}
		log.Error("failed to get attendance by ID",
			slog.String("error", err.Error()),
			slog.String("attendance_id", id.String()))
		return nil, MapError(err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements store.AttendanceStore.GetByEmployeeAndDate
func (s *PostgresAttendanceStore) GetByEmployeeAndDate(
	ctx context.Context,
	employeeID uuid.UUID,
	date time.Time,
) (*domain.Attendance, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date = $2`

	att, err := scanAttendance(s.db.QueryRowContext(ctx, query, employeeID, domain.TruncateDate(date)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAttendanceNotFound
		}
		log.Error("failed to get attendance by employee and date",
			slog.String("error", err.Error()),
			slog.String("employee_id", employeeID.String()))
		return nil, MapError(err)
	}

	return att, nil
}

// Update implements store.AttendanceStore.Update
// Only the times, break and notes change; the owner and date are fixed.
func (s *PostgresAttendanceStore) Update(ctx context.Context, att *domain.Attendance) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := att.Validate(); err != nil {
		log.Warn("attendance validation failed during update",
			slog.String("error", err.Error()),
			slog.String("attendance_id", att.ID.String()))
		return err
	}

	query := `
		UPDATE attendances
		SET start_time = $1, end_time = $2, break_duration_minutes = $3,
			notes_free_text = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(ctx, query,
		att.StartTime,
		att.EndTime,
		att.BreakDurationMinutes,
		att.Notes,
		att.UpdatedAt,
		att.ID,
	)
	if err != nil {
		log.Error("failed to update attendance",
			slog.String("error", err.Error()),
			slog.String("attendance_id", att.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrAttendanceNotFound); err != nil {
		log.Debug("attendance not found for update", slog.String("attendance_id", att.ID.String()))
		return err
	}

	log.Debug("attendance updated", slog.String("attendance_id", att.ID.String()))
	return nil
}

// ListByEmployee implements store.AttendanceStore.ListByEmployee
func (s *PostgresAttendanceStore) ListByEmployee(
	ctx context.Context,
	employeeID uuid.UUID,
	month *domain.MonthRange,
) ([]*domain.Attendance, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE employee_id = $1`
	args := []any{employeeID}
	if month != nil {
		query += ` AND date >= $2 AND date < $3`
		args = append(args, month.Start, month.End)
	}
	query += ` ORDER BY date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list attendances",
			slog.String("error", err.Error()),
			slog.String("employee_id", employeeID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	records := []*domain.Attendance{}
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			log.Error("failed to scan attendance row", slog.String("error", err.Error()))
			return nil, err
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating attendance rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("attendances listed",
		slog.String("employee_id", employeeID.String()),
		slog.Bool("month_filter", month != nil),
		slog.Int("rows", len(records)))
	return records, nil
}

// DeleteOwned implements store.AttendanceStore.DeleteOwned
// A record owned by another employee is reported as not found.
func (s *PostgresAttendanceStore) DeleteOwned(ctx context.Context, id, employeeID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM attendances WHERE id = $1 AND employee_id = $2`, id, employeeID)
	if err != nil {
		log.Error("failed to delete attendance",
			slog.String("error", err.Error()),
			slog.String("attendance_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrAttendanceNotFound); err != nil {
		log.Debug("attendance not found for delete",
			slog.String("attendance_id", id.String()),
			slog.String("employee_id", employeeID.String()))
		return err
	}

	log.Debug("attendance deleted", slog.String("attendance_id", id.String()))
	return nil
}

func scanAttendance(row rowScanner) (*domain.Attendance, error) {
	var att domain.Attendance
	err := row.Scan(
		&att.ID,
		&att.EmployeeID,
		&att.Date,
		&att.StartTime,
		&att.EndTime,
		&att.BreakDurationMinutes,
		&att.Notes,
		&att.CreatedAt,
		&att.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	att.Date = domain.TruncateDate(att.Date.UTC())
	att.StartTime = att.StartTime.UTC()
	att.EndTime = att.EndTime.UTC()
	att.CreatedAt = att.CreatedAt.UTC()
	att.UpdatedAt = att.UpdatedAt.UTC()
	return &att, nil
}
