package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Attendance
var (
	ErrEmptyAttendanceID = errors.New("attendance ID cannot be empty")
	ErrEmptyEmployeeID   = errors.New("employee ID cannot be empty")
	ErrInvalidTimestamp  = errors.New("invalid timestamp")
	ErrNonUTCTimestamp   = errors.New("timestamp must be in UTC")
	ErrInvalidDate       = errors.New("invalid date")
	ErrEndBeforeStart    = errors.New("end time cannot be before start time")
	ErrNegativeBreak     = errors.New("break duration cannot be negative")
)

// dateLayout is the wire and storage format of attendance dates.
const dateLayout = "2006-01-02"

// naiveTimestampLayouts are accepted for timestamps without a UTC offset.
// Fractional seconds are accepted after the seconds field by time.Parse.
var naiveTimestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// Attendance is one employee's working day: when they started and ended,
// how long their break was and optional free-text notes. There is at most one
// record per employee and date.
type Attendance struct {
	ID                   uuid.UUID `json:"id"`
	EmployeeID           uuid.UUID `json:"employee_id"`
	Date                 time.Time `json:"date"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	BreakDurationMinutes int       `json:"break_duration_minutes"`
	Notes                *string   `json:"notes_free_text"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// NewAttendance creates a new attendance record for the employee. The date is
// truncated to midnight UTC. Returns an error if validation fails.
func NewAttendance(
	employeeID uuid.UUID,
	date, start, end time.Time,
	breakMinutes int,
	notes *string,
) (*Attendance, error) {
	now := time.Now().UTC()
	a := &Attendance{
		ID:                   uuid.New(),
		EmployeeID:           employeeID,
		Date:                 TruncateDate(date),
		StartTime:            start,
		EndTime:              end,
		BreakDurationMinutes: breakMinutes,
		Notes:                notes,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate checks if the Attendance has valid data.
func (a *Attendance) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAttendanceID
	}
	if a.EmployeeID == uuid.Nil {
		return ErrEmptyEmployeeID
	}
	if a.Date.IsZero() {
		return NewValidationError("date", "is required", ErrInvalidDate)
	}
	if !isUTC(a.StartTime) {
		return NewValidationError("start_time", "must be in UTC", ErrNonUTCTimestamp)
	}
	if !isUTC(a.EndTime) {
		return NewValidationError("end_time", "must be in UTC", ErrNonUTCTimestamp)
	}
	if a.EndTime.Before(a.StartTime) {
		return NewValidationError("end_time", "cannot be before start_time", ErrEndBeforeStart)
	}
	if a.BreakDurationMinutes < 0 {
		return NewValidationError("break_duration_minutes", "cannot be negative", ErrNegativeBreak)
	}
	return nil
}

// ReplaceWith copies the content of other onto a, keeping a's identity,
// owner and creation time. It is used when a second record for the same day
// replaces the first.
func (a *Attendance) ReplaceWith(other *Attendance) {
	a.StartTime = other.StartTime
	a.EndTime = other.EndTime
	a.BreakDurationMinutes = other.BreakDurationMinutes
	a.Notes = other.Notes
	a.UpdatedAt = time.Now().UTC()
}

// ParseUTCTimestamp parses an ISO 8601 timestamp. A timestamp without an
// offset is taken to be UTC; one with a non-zero offset is rejected with
// ErrNonUTCTimestamp.
func ParseUTCTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		if !isUTC(t) {
			return time.Time{}, ErrNonUTCTimestamp
		}
		return t.UTC(), nil
	}

	for _, layout := range naiveTimestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, ErrInvalidTimestamp
}

// ParseTimestamp parses an ISO 8601 timestamp or a bare YYYY-MM-DD date and
// returns it in UTC. Any offset is accepted; a timestamp without one is taken
// to be UTC.
func ParseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}

	for _, layout := range naiveTimestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}

	return time.Time{}, ErrInvalidTimestamp
}

// ParseDate parses a calendar date in YYYY-MM-DD form as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FormatDate renders a date in YYYY-MM-DD form.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// TruncateDate drops the time of day, returning midnight UTC of t's date.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isUTC(t time.Time) bool {
	_, offset := t.Zone()
	return offset == 0
}
