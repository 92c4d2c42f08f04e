package postgres

import (
	"time"
)

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// utcPtr normalizes an optional timestamp read from the database to UTC.
// PostgreSQL returns timestamptz values in the session's local zone.
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
