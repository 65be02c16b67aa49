package membership

import (
	"fmt"
	"time"
)

// DateLayout is the only accepted external date representation.
const DateLayout = "2006-01-02"

// DaysPerMonth is the fixed month length used for subscription periods.
// Periods are not calendar-accurate: a 12 month course lasts 360 days.
const DaysPerMonth = 30

// ParseDate parses a strict YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, s)
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// ComputeEndDate returns start + durationMonths*30 days.
func ComputeEndDate(start time.Time, durationMonths int) time.Time {
	return start.AddDate(0, 0, durationMonths*DaysPerMonth)
}

// Period is the half-open date range [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

// PeriodFor builds the period a course of durationMonths covers from start.
// It returns ErrInvalidCourse for non-positive durations.
func PeriodFor(start time.Time, durationMonths int) (Period, error) {
	if durationMonths <= 0 {
		return Period{}, fmt.Errorf("%w: %d months", ErrInvalidCourse, durationMonths)
	}
	return Period{Start: start, End: ComputeEndDate(start, durationMonths)}, nil
}

// Overlaps reports whether p and o share at least one day.  Back-to-back
// periods, where one ends exactly when the other starts, do not overlap.
func (p Period) Overlaps(o Period) bool {
	return p.Start.Before(o.End) && o.Start.Before(p.End)
}

// Days returns the length of the period in whole days.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours() / 24)
}
