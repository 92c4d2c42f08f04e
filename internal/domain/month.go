package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidMonth is returned when a month filter is not of the form YYYY-MM.
var ErrInvalidMonth = errors.New("invalid month format")

// MonthRange is the half-open date range [Start, End) covering one calendar
// month.
type MonthRange struct {
	Start time.Time
	End   time.Time
}

// ParseMonth turns a "YYYY-MM" filter into the range from the first of that
// month up to, but excluding, the first of the next month. December rolls
// over into January of the following year.
func ParseMonth(value string) (MonthRange, error) {
	parts := strings.Split(value, "-")
	if len(parts) != 2 {
		return MonthRange{}, ErrInvalidMonth
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1 || year > 9999 {
		return MonthRange{}, ErrInvalidMonth
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return MonthRange{}, ErrInvalidMonth
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes month 13 to January of the next year.
	end := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)

	return MonthRange{Start: start, End: end}, nil
}
