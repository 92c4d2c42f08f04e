package service

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

// AttendanceInput is an attendance record as submitted by a client, before
// its timestamps are interpreted.
type AttendanceInput struct {
	// Date in YYYY-MM-DD form. When empty, the date of StartTime is used.
	Date string
	// StartTime and EndTime are ISO 8601 timestamps. Timestamps without an
	// offset are taken as UTC; any non-zero offset is rejected.
	StartTime            string
	EndTime              string
	BreakDurationMinutes int
	Notes                *string
}

// AttendanceService manages the attendance records of the calling employee.
// Users are identified by their user ID; the employee record is resolved
// from it.
type AttendanceService interface {
	// RecordAttendance stores the caller's attendance for a day. A record
	// that already exists for the same day is replaced in place, keeping its
	// ID; created reports whether a new record was made.
	RecordAttendance(ctx context.Context, userID uuid.UUID, input AttendanceInput) (att *domain.Attendance, created bool, err error)

	// ListAttendances returns the caller's records ordered by date. A
	// non-empty month ("YYYY-MM") restricts the result to that month.
	ListAttendances(ctx context.Context, userID uuid.UUID, month string) ([]*domain.Attendance, error)

	// DeleteAttendance removes one of the caller's records. Records of other
	// employees are reported as not found.
	DeleteAttendance(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type attendanceServiceImpl struct {
	attendances store.AttendanceStore
	employees   store.EmployeeStore
	db          *sql.DB
	logger      *slog.Logger
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(
	attendances store.AttendanceStore,
	employees store.EmployeeStore,
	db *sql.DB,
	logger *slog.Logger,
) AttendanceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &attendanceServiceImpl{
		attendances: attendances,
		employees:   employees,
		db:          db,
		logger:      logger.With(slog.String("component", "attendance_service")),
	}
}

// RecordAttendance implements AttendanceService.RecordAttendance
func (s *attendanceServiceImpl) RecordAttendance(
	ctx context.Context,
	userID uuid.UUID,
	input AttendanceInput,
) (*domain.Attendance, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	date, start, end, err := parseAttendanceTimes(input)
	if err != nil {
		log.Debug("rejected attendance input",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, false, err
	}

	var (
		result  *domain.Attendance
		created bool
	)
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		emp, err := s.employeeFor(ctx, s.employees.WithTx(tx), userID)
		if err != nil {
			return err
		}

		candidate, err := domain.NewAttendance(emp.ID, date, start, end, input.BreakDurationMinutes, input.Notes)
		if err != nil {
			return err
		}

		attendances := s.attendances.WithTx(tx)
		existing, err := attendances.GetByEmployeeAndDate(ctx, emp.ID, candidate.Date)
		switch {
		case err == nil:
			existing.ReplaceWith(candidate)
			if err := attendances.Update(ctx, existing); err != nil {
				return err
			}
			result = existing
		case errors.Is(err, store.ErrAttendanceNotFound):
			if err := attendances.Create(ctx, candidate); err != nil {
				return err
			}
			result, created = candidate, true
		default:
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNoEmployeeRecord) {
			log.Info("attendance rejected for user without employee record",
				slog.String("user_id", userID.String()))
			return nil, false, err
		}
		log.Warn("failed to record attendance",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, false, NewServiceError("attendance", "record", err)
	}

	log.Info("attendance recorded",
		slog.String("attendance_id", result.ID.String()),
		slog.String("date", domain.FormatDate(result.Date)),
		slog.Bool("created", created))
	return result, created, nil
}

// ListAttendances implements AttendanceService.ListAttendances
func (s *attendanceServiceImpl) ListAttendances(
	ctx context.Context,
	userID uuid.UUID,
	month string,
) ([]*domain.Attendance, error) {
	var filter *domain.MonthRange
	if month != "" {
		r, err := domain.ParseMonth(month)
		if err != nil {
			return nil, domain.NewValidationError("month", "must be in YYYY-MM format", err)
		}
		filter = &r
	}

	var records []*domain.Attendance
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		emp, err := s.employeeFor(ctx, s.employees.WithTx(tx), userID)
		if err != nil {
			return err
		}
		records, err = s.attendances.WithTx(tx).ListByEmployee(ctx, emp.ID, filter)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNoEmployeeRecord) {
			return nil, err
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list attendances",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, NewServiceError("attendance", "list", err)
	}

	return records, nil
}

// DeleteAttendance implements AttendanceService.DeleteAttendance
func (s *attendanceServiceImpl) DeleteAttendance(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		emp, err := s.employeeFor(ctx, s.employees.WithTx(tx), userID)
		if err != nil {
			return err
		}
		return s.attendances.WithTx(tx).DeleteOwned(ctx, id, emp.ID)
	})
	if err != nil {
		if errors.Is(err, ErrNoEmployeeRecord) {
			return err
		}
		log.Debug("attendance not deleted",
			slog.String("attendance_id", id.String()),
			slog.String("error", err.Error()))
		return NewServiceError("attendance", "delete", err)
	}

	log.Info("attendance deleted", slog.String("attendance_id", id.String()))
	return nil
}

func (s *attendanceServiceImpl) employeeFor(
	ctx context.Context,
	employees store.EmployeeStore,
	userID uuid.UUID,
) (*domain.Employee, error) {
	emp, err := employees.GetByUserID(ctx, userID)
	if errors.Is(err, store.ErrEmployeeNotFound) {
		return nil, ErrNoEmployeeRecord
	}
	return emp, err
}

func parseAttendanceTimes(input AttendanceInput) (date, start, end time.Time, err error) {
	start, err = domain.ParseUTCTimestamp(input.StartTime)
	if err != nil {
		return date, start, end, domain.NewValidationError("start_time", timestampMessage(err), err)
	}
	end, err = domain.ParseUTCTimestamp(input.EndTime)
	if err != nil {
		return date, start, end, domain.NewValidationError("end_time", timestampMessage(err), err)
	}

	if input.Date == "" {
		return domain.TruncateDate(start), start, end, nil
	}
	date, err = domain.ParseDate(input.Date)
	if err != nil {
		return date, start, end, domain.NewValidationError("date", "must be in YYYY-MM-DD format", err)
	}
	return date, start, end, nil
}

func timestampMessage(err error) string {
	if errors.Is(err, domain.ErrNonUTCTimestamp) {
		return "must be in UTC"
	}
	return "must be an ISO 8601 timestamp"
}
