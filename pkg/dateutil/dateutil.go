package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// MonthLayout is the accepted layout for month-precision dates.
const MonthLayout = "2006-01"

// StartOfMonth truncates t to midnight on the first day of its month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// ParseMonth parses "YYYY-MM" or "YYYY-MM-DD" and returns the first of that month in UTC.
func ParseMonth(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{MonthLayout, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return StartOfMonth(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
}

// AddMonths returns the first of the month that is n months after start's month.
func AddMonths(start time.Time, n int) time.Time {
	return StartOfMonth(start).AddDate(0, n, 0)
}

// FormatMonth renders t as "January 2026".
func FormatMonth(t time.Time) string {
	return t.Format("January 2006")
}
