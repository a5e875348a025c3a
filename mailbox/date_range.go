package mailbox

import (
	"fmt"
	"time"

	"github.com/creativeprojects/mailpurge/lib"
)

// DateRange covers whole days: both Start and End are included
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange returns an error wrapping lib.ErrInvalidDateRange when start is after end
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{
		Start: lib.TruncateDay(start),
		End:   lib.TruncateDay(end),
	}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// ParseDateRange reads two dates typed as YYYY-MM-DD
func ParseDateRange(start, end string) (DateRange, error) {
	startDate, err := lib.ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	endDate, err := lib.ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	return NewDateRange(startDate, endDate)
}

func (r DateRange) Validate() error {
	if lib.TruncateDay(r.Start).After(lib.TruncateDay(r.End)) {
		return fmt.Errorf("%w: %s is after %s", lib.ErrInvalidDateRange, r.Start.Format(lib.DateLayout), r.End.Format(lib.DateLayout))
	}
	return nil
}

// Since is the SEARCH SINCE bound (inclusive)
func (r DateRange) Since() time.Time {
	return lib.TruncateDay(r.Start)
}

// Before is the SEARCH BEFORE bound (exclusive): the day after End
func (r DateRange) Before() time.Time {
	return lib.NextDay(r.End)
}

// Contains reports whether the calendar day of t falls within the range
func (r DateRange) Contains(t time.Time) bool {
	day := lib.TruncateDay(t)
	return !day.Before(r.Since()) && day.Before(r.Before())
}

func (r DateRange) String() string {
	return r.Start.Format("02-Jan-2006") + " to " + r.End.Format("02-Jan-2006")
}

// Criteria returns the search criteria matching the range
func (r DateRange) Criteria() Criteria {
	return Criteria{
		Since:  r.Since(),
		Before: r.Before(),
	}
}

// Criteria of a message search on the internal date. A zero bound is ignored.
type Criteria struct {
	Since  time.Time
	Before time.Time
}

// Match compares the calendar day of the internal date with the bounds
func (c Criteria) Match(internalDate time.Time) bool {
	day := lib.TruncateDay(internalDate)
	if !c.Since.IsZero() && day.Before(c.Since) {
		return false
	}
	if !c.Before.IsZero() && !day.Before(c.Before) {
		return false
	}
	return true
}
