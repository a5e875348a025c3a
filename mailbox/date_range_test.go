package mailbox

import (
	"testing"
	"time"

	"github.com/creativeprojects/mailpurge/lib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestDateRangeBounds(t *testing.T) {
	r, err := ParseDateRange("2023-12-01", "2023-12-31")
	require.NoError(t, err)

	assert.Equal(t, day(2023, 12, 1), r.Since())
	assert.Equal(t, day(2024, 1, 1), r.Before())
	assert.Equal(t, "01-Dec-2023 to 31-Dec-2023", r.String())
}

func TestDateRangeSingleDay(t *testing.T) {
	r, err := NewDateRange(day(2024, 2, 29), day(2024, 2, 29))
	require.NoError(t, err)

	assert.Equal(t, day(2024, 2, 29), r.Since())
	assert.Equal(t, day(2024, 3, 1), r.Before())
	assert.True(t, r.Contains(time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.Contains(day(2024, 3, 1)))
	assert.False(t, r.Contains(time.Date(2024, 2, 28, 23, 59, 59, 0, time.UTC)))
}

func TestDateRangeContainsIsInclusive(t *testing.T) {
	r, err := NewDateRange(day(2023, 1, 10), day(2023, 1, 20))
	require.NoError(t, err)

	for d := day(2023, 1, 1); d.Before(day(2023, 2, 1)); d = d.AddDate(0, 0, 1) {
		expected := !d.Before(day(2023, 1, 10)) && !d.After(day(2023, 1, 20))
		assert.Equalf(t, expected, r.Contains(d.Add(12*time.Hour)), "day %s", d.Format(lib.DateLayout))
	}
}

func TestDateRangeRejectsReversedDates(t *testing.T) {
	_, err := NewDateRange(day(2024, 1, 2), day(2024, 1, 1))
	assert.ErrorIs(t, err, lib.ErrInvalidDateRange)

	_, err = ParseDateRange("2024-01-02", "2024-01-01")
	assert.ErrorIs(t, err, lib.ErrInvalidDateRange)

	assert.ErrorIs(t, DateRange{Start: day(2024, 1, 2), End: day(2024, 1, 1)}.Validate(), lib.ErrInvalidDateRange)
}

func TestParseDateRangeInvalidInput(t *testing.T) {
	_, err := ParseDateRange("yesterday", "2024-01-01")
	assert.ErrorIs(t, err, lib.ErrInvalidDate)

	_, err = ParseDateRange("2024-01-01", "2024-13-01")
	assert.ErrorIs(t, err, lib.ErrInvalidDate)
}
