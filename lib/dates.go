package lib

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout used by the operator to type a date
const DateLayout = "2006-01-02"

// ParseDate reads a date typed as YYYY-MM-DD. The result is midnight UTC.
func ParseDate(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	date, err := time.Parse(DateLayout, input)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (expected YYYY-MM-DD)", ErrInvalidDate, input)
	}
	return date, nil
}

// TruncateDay drops the time of day. The calendar date of t is kept and the result is in UTC.
func TruncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NextDay returns midnight of the day following t
func NextDay(t time.Time) time.Time {
	return TruncateDay(t).AddDate(0, 0, 1)
}
