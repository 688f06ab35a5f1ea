package model

import (
	"fmt"
	"strings"
	"time"
)

// TimeSpan is a calendar-aware breakdown of the time between two instants.
type TimeSpan struct {
	Years       int
	Months      int
	Days        int
	Description string
}

// ComputeTimeSpan breaks the interval [start, end] into whole years, months
// and days. A start after end yields the zero span.
func ComputeTimeSpan(start, end time.Time) TimeSpan {
	start, end = start.UTC(), end.UTC()
	if !start.Before(end) {
		return newTimeSpan(0, 0, 0)
	}

	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	anchor := AddMonths(start, months)
	for months > 0 && anchor.After(end) {
		months--
		anchor = AddMonths(start, months)
	}

	days := int(end.Sub(anchor) / (24 * time.Hour))
	return newTimeSpan(months/12, months%12, days)
}

// AddMonths adds n calendar months to t. The day of month is clamped to the
// last day of the target month, so Jan 31 plus one month is Feb 28 (or 29).
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func newTimeSpan(years, months, days int) TimeSpan {
	return TimeSpan{
		Years:       years,
		Months:      months,
		Days:        days,
		Description: describe(years, months, days),
	}
}

func describe(years, months, days int) string {
	var parts []string
	if years > 0 {
		parts = append(parts, plural(years, "year"))
	}
	if months > 0 {
		parts = append(parts, plural(months, "month"))
	}
	if days > 0 || len(parts) == 0 {
		parts = append(parts, plural(days, "day"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
