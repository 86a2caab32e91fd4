package calendar

import (
	"sort"
	"time"
)

// Day source values
const (
	SourceGenerated = "generated"
	SourcePersisted = "persisted"
)

// Override persisted state of a day. It replaces the generated entry verbatim.
type Override struct {
	Date      time.Time
	GroupID   *string
	GroupName string
	IsHoliday bool
	Note      *string
}

// Day merged calendar view of one date.
// GroupID is only known for persisted days; generated days carry the group name.
type Day struct {
	Date      time.Time
	Weekday   time.Weekday
	GroupID   *string
	GroupName string
	IsHoliday bool
	Note      *string
	SlotGroup string
	Cycle     Cycle
	Source    string
}

// HasService reports whether a group is expected on the day.
func (d Day) HasService() bool {
	return d.GroupName != "" || d.GroupID != nil
}

// OverrideIndex overrides keyed by epoch day.
type OverrideIndex map[int64]Override

// IndexOverrides builds an index, later entries win for duplicate dates.
func IndexOverrides(overrides []Override) OverrideIndex {
	idx := make(OverrideIndex, len(overrides))
	for _, o := range overrides {
		o.Date = DayKey(o.Date)
		idx[EpochDay(o.Date)] = o
	}
	return idx
}

// Merge combines generated entries with persisted overrides in [from, to].
// A persisted day always wins. Overrides on dates the generator does not
// produce, such as a substitution Wednesday, are included as well.
func (g *Generator) Merge(entries []Entry, overrides OverrideIndex, from, to time.Time) []Day {
	lo, hi := EpochDay(from), EpochDay(to)
	days := make([]Day, 0, len(entries)+len(overrides))
	seen := make(map[int64]struct{}, len(entries))

	for _, e := range entries {
		n := EpochDay(e.Date)
		if n < lo || n > hi {
			continue
		}
		seen[n] = struct{}{}
		if o, ok := overrides[n]; ok {
			days = append(days, fromOverride(o, e.SlotGroup, e.Cycle))
			continue
		}
		days = append(days, Day{
			Date:      e.Date,
			Weekday:   e.Weekday,
			GroupName: e.Group,
			IsHoliday: e.IsHoliday,
			SlotGroup: e.SlotGroup,
			Cycle:     e.Cycle,
			Source:    SourceGenerated,
		})
	}

	for n, o := range overrides {
		if _, ok := seen[n]; ok || n < lo || n > hi {
			continue
		}
		slot, _ := g.SlotGroup(o.Date)
		days = append(days, fromOverride(o, slot, g.Cycle(o.Date)))
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}

func fromOverride(o Override, slot string, c Cycle) Day {
	date := DayKey(o.Date)
	return Day{
		Date:      date,
		Weekday:   weekdayOf(EpochDay(date)),
		GroupID:   o.GroupID,
		GroupName: o.GroupName,
		IsHoliday: o.IsHoliday,
		Note:      o.Note,
		SlotGroup: slot,
		Cycle:     c,
		Source:    SourcePersisted,
	}
}
