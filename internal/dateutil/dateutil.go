// Package dateutil holds the calendar arithmetic shared by the view state
// machine, the statistics aggregator and the API surface. Weeks start on
// Monday as a fixed constant, never derived from locale, so date-range math
// stays deterministic.
package dateutil

import (
	"fmt"
	"time"

	"github.com/agentcal/core/internal/domain/entities"
)

// Parse parses a canonical YYYY-MM-DD string into a UTC date.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(entities.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", entities.ErrInvalidDate, s)
	}
	return t, nil
}

// Format renders a date in the canonical YYYY-MM-DD form.
func Format(t time.Time) string {
	return t.Format(entities.DateLayout)
}

// Truncate drops the time-of-day portion, keeping year/month/day in UTC.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	t = Truncate(t)
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return t.AddDate(0, 0, -offset)
}

// EndOfWeek returns the Sunday of the week containing t.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 6)
}

// StartOfMonth returns the first day of the month containing t.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last day of the month containing t.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// StartOfYear returns January 1st of the year containing t.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
}

// EndOfYear returns December 31st of the year containing t.
func EndOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), 12, 31, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths steps t by n calendar months, clamping the day-of-month to the
// target month's length (Jan 31 + 1 month = Feb 28/29). time.AddDate would
// normalize the overflow into the next month instead, which makes prev/next
// navigation asymmetric.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	year := y + total/12
	month := time.Month(total%12 + 1)
	if total < 0 && total%12 != 0 {
		year--
		month = time.Month(total%12 + 13)
	}
	if max := DaysIn(year, month); d > max {
		d = max
	}
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// AddYears steps t by n calendar years with the same day clamp
// (Feb 29 + 1 year = Feb 28).
func AddYears(t time.Time, n int) time.Time {
	return AddMonths(t, n*12)
}

// EachDay enumerates every calendar day in [start, end] inclusive.
func EachDay(start, end time.Time) []time.Time {
	start, end = Truncate(start), Truncate(end)
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Within reports whether t falls in [start, end] inclusive, comparing
// calendar days only.
func Within(t, start, end time.Time) bool {
	t, start, end = Truncate(t), Truncate(start), Truncate(end)
	return !t.Before(start) && !t.After(end)
}

// ISOWeekStart returns the Monday of the given ISO week.
func ISOWeekStart(year, week int) time.Time {
	// Jan 4 is always inside ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	return StartOfWeek(jan4).AddDate(0, 0, (week-1)*7)
}

// MonthKey identifies the calendar month of t, used for grouping series
// points ("2006-01").
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
