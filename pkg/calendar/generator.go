package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// ErrAnchorNotTuesday the anchor date must be a cycle-A Tuesday
var ErrAnchorNotTuesday = errors.New("calendar: anchor date is not a Tuesday")

// Cycle two-week alternation
type Cycle int

const (
	CycleA Cycle = iota
	CycleB
)

func (c Cycle) String() string {
	if c == CycleB {
		return "B"
	}
	return "A"
}

// Rotation group name per (weekday, cycle) slot
type Rotation struct {
	TuesdayA  string
	TuesdayB  string
	ThursdayA string
	ThursdayB string
}

// DefaultRotation the parish rotation
var DefaultRotation = Rotation{
	TuesdayA:  "Fe",
	TuesdayB:  "Caridad",
	ThursdayA: "Esperanza",
	ThursdayB: "Amor",
}

// Group slot owner, false for days without service.
func (r Rotation) Group(wd time.Weekday, c Cycle) (string, bool) {
	switch {
	case wd == time.Tuesday && c == CycleA:
		return r.TuesdayA, true
	case wd == time.Tuesday && c == CycleB:
		return r.TuesdayB, true
	case wd == time.Thursday && c == CycleA:
		return r.ThursdayA, true
	case wd == time.Thursday && c == CycleB:
		return r.ThursdayB, true
	}
	return "", false
}

// Names the four slot owners in rotation order.
func (r Rotation) Names() []string {
	return []string{r.TuesdayA, r.ThursdayA, r.TuesdayB, r.ThursdayB}
}

// Entry one generated service day.
// SlotGroup is always the rotation owner; Group is empty on holidays.
type Entry struct {
	Date      time.Time
	Weekday   time.Weekday
	Cycle     Cycle
	SlotGroup string
	Group     string
	IsHoliday bool
}

// Generator deterministic rotation calendar.
type Generator struct {
	anchor   int64
	rotation Rotation
}

// NewGenerator anchor is any time on a Tuesday known to be cycle A.
func NewGenerator(anchor time.Time, rotation Rotation) (*Generator, error) {
	day := EpochDay(anchor)
	if weekdayOf(day) != time.Tuesday {
		return nil, fmt.Errorf("%w: %s", ErrAnchorNotTuesday, FormatDay(anchor))
	}
	return &Generator{anchor: day, rotation: rotation}, nil
}

// Anchor the anchor day key.
func (g *Generator) Anchor() time.Time { return FromEpochDay(g.anchor) }

// Rotation the slot table.
func (g *Generator) Rotation() Rotation { return g.rotation }

// Cycle A on even weeks since the anchor, B on odd ones. Dates before the anchor
// use floor division so the alternation continues backwards.
func (g *Generator) Cycle(date time.Time) Cycle {
	weeks := floorDiv(EpochDay(date)-g.anchor, 7)
	if floorMod(weeks, 2) == 0 {
		return CycleA
	}
	return CycleB
}

// SlotGroup rotation owner of date, false unless date is a Tuesday or Thursday.
func (g *Generator) SlotGroup(date time.Time) (string, bool) {
	return g.rotation.Group(weekdayOf(EpochDay(date)), g.Cycle(date))
}

// Entry computes the generated entry for a single date.
func (g *Generator) Entry(date time.Time, holidays HolidaySet) (Entry, bool) {
	day := EpochDay(date)
	wd := weekdayOf(day)
	c := g.Cycle(date)
	slot, ok := g.rotation.Group(wd, c)
	if !ok {
		return Entry{}, false
	}
	e := Entry{
		Date:      FromEpochDay(day),
		Weekday:   wd,
		Cycle:     c,
		SlotGroup: slot,
		Group:     slot,
	}
	if holidays.Contains(date) {
		e.IsHoliday = true
		e.Group = ""
	}
	return e, true
}

// Range generated entries for every Tuesday and Thursday in [from, to], ordered by date.
func (g *Generator) Range(from, to time.Time, holidays HolidaySet) ([]Entry, error) {
	start, end := DayKey(from), DayKey(to)
	if end.Before(start) {
		return nil, nil
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rrule.TU, rrule.TH},
		Dtstart:   start,
		Until:     end,
	})
	if err != nil {
		return nil, fmt.Errorf("calendar: build recurrence: %w", err)
	}

	occurrences := rule.All()
	entries := make([]Entry, 0, len(occurrences))
	for _, occ := range occurrences {
		if e, ok := g.Entry(occ, holidays); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// Year generated entries from January 1 to December 31.
func (g *Generator) Year(year int, holidays HolidaySet) ([]Entry, error) {
	from, to := YearBounds(year)
	return g.Range(from, to, holidays)
}
