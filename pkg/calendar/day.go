// Package calendar computes the Tuesday/Thursday service rotation and merges
// it with persisted per-day overrides. Every date handled here is a calendar
// date keyed at UTC midnight; weekday and cycle arithmetic runs on integer
// day numbers so DST shifts cannot move a date.
package calendar

import (
	"time"
)

// DateLayout wire format of a calendar date
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// DayKey normalizes t to UTC midnight of its calendar date.
// The calendar date is read in t's own location.
func DayKey(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EpochDay day number of t's calendar date since 1970-01-01.
func EpochDay(t time.Time) int64 {
	return floorDiv(DayKey(t).Unix(), secondsPerDay)
}

// FromEpochDay inverse of EpochDay.
func FromEpochDay(n int64) time.Time {
	return time.Unix(n*secondsPerDay, 0).UTC()
}

// DayBounds inclusive start/end of t's calendar date in UTC.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := DayKey(t)
	return start, start.Add(24*time.Hour - time.Nanosecond)
}

// ParseDay parses "2006-01-02" into a day key.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DayKey(t), nil
}

// FormatDay formats a day key as "2006-01-02".
func FormatDay(t time.Time) string {
	return DayKey(t).Format(DateLayout)
}

// Today the current calendar date in loc, as a day key.
func Today(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return DayKey(time.Now().In(loc))
}

// YearBounds first and last day of year.
func YearBounds(year int) (time.Time, time.Time) {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// MonthBounds first and last day of month, months beyond December roll into the next year.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// weekdayOf weekday from the day number; 1970-01-01 was a Thursday.
func weekdayOf(epochDay int64) time.Weekday {
	return time.Weekday((floorMod(epochDay, 7) + int64(time.Thursday)) % 7)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}
