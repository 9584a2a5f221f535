// Package valueobject contains domain value objects for the Expense Tracker system.
package valueobject

import (
	"cmp"
	"fmt"
	"time"
)

// MonthLayout is the textual form of a Month (YYYY-MM).
const MonthLayout = "2006-01"

// DateLayout is the textual form of a calendar date (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Month identifies a calendar month. The zero value is not a valid month.
type Month struct {
	year  int
	month time.Month
}

// NewMonth returns the month for the given year and month number.
func NewMonth(year int, month time.Month) Month {
	return MonthOf(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the calendar month that t falls in, read in t's own location.
func MonthOf(t time.Time) Month {
	if t.IsZero() {
		return Month{}
	}
	return Month{year: t.Year(), month: t.Month()}
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return MonthOf(t), nil
}

// IsZero reports whether m is the zero Month.
func (m Month) IsZero() bool {
	return m.year == 0 && m.month == 0
}

// Year returns the month's year.
func (m Month) Year() int { return m.year }

// Month returns the month of the year.
func (m Month) Month() time.Month { return m.month }

// Start returns midnight UTC of the first day of the month.
func (m Month) Start() time.Time {
	return time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns midnight UTC of the last day of the month.
func (m Month) End() time.Time {
	return m.Start().AddDate(0, 1, -1)
}

// AddMonths returns the month n months after m (n may be negative).
func (m Month) AddMonths(n int) Month {
	return MonthOf(m.Start().AddDate(0, n, 0))
}

// Before reports whether m is earlier than other.
func (m Month) Before(other Month) bool {
	if m.year != other.year {
		return m.year < other.year
	}
	return m.month < other.month
}

// Compare returns -1, 0 or +1 as m is before, equal to or after other.
func (m Month) Compare(other Month) int {
	if c := cmp.Compare(m.year, other.year); c != 0 {
		return c
	}
	return cmp.Compare(m.month, other.month)
}

// Contains reports whether the calendar date of t falls in m.
func (m Month) Contains(t time.Time) bool {
	return !t.IsZero() && MonthOf(t) == m
}

// Key returns the YYYY-MM bucket key for m.
func (m Month) Key() string {
	if m.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", m.year, int(m.month))
}

// String implements fmt.Stringer.
func (m Month) String() string {
	return m.Key()
}

// CalendarDate truncates t to midnight UTC of its calendar date, read in t's
// own location. Time of day is dropped.
func CalendarDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
