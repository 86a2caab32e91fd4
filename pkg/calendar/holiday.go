package calendar

import (
	"sort"
	"time"
)

// HolidaySet set of calendar dates keyed by epoch day.
// The zero value is not usable, build one with NewHolidaySet.
type HolidaySet map[int64]struct{}

// NewHolidaySet builds a set from any times, normalized to their calendar date.
func NewHolidaySet(dates ...time.Time) HolidaySet {
	s := make(HolidaySet, len(dates))
	for _, d := range dates {
		s.Add(d)
	}
	return s
}

// ParseHolidaySet builds a set from "2006-01-02" strings.
func ParseHolidaySet(dates []string) (HolidaySet, error) {
	s := make(HolidaySet, len(dates))
	for _, raw := range dates {
		d, err := ParseDay(raw)
		if err != nil {
			return nil, err
		}
		s.Add(d)
	}
	return s, nil
}

// Add inserts d.
func (s HolidaySet) Add(d time.Time) {
	s[EpochDay(d)] = struct{}{}
}

// Contains reports whether d is a holiday. A nil set contains nothing.
func (s HolidaySet) Contains(d time.Time) bool {
	if s == nil {
		return false
	}
	_, ok := s[EpochDay(d)]
	return ok
}

// Len number of dates in the set.
func (s HolidaySet) Len() int { return len(s) }

// Dates sorted day keys.
func (s HolidaySet) Dates() []time.Time {
	out := make([]time.Time, 0, len(s))
	for n := range s {
		out = append(out, FromEpochDay(n))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
