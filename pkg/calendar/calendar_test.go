package calendar

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := NewGenerator(date(2026, 2, 3), DefaultRotation)
	require.NoError(t, err)
	return g
}

// ── day keys ──

func TestDayKeyStripsTimeOfDay(t *testing.T) {
	loc, err := time.LoadLocation("America/Caracas")
	require.NoError(t, err)

	evening := time.Date(2026, 2, 3, 22, 30, 0, 0, loc) // already Feb 4 in UTC
	assert.Equal(t, date(2026, 2, 3), DayKey(evening))
	assert.Equal(t, date(2026, 2, 3), DayKey(date(2026, 2, 3).Add(23*time.Hour)))
}

func TestEpochDayAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2026-03-08 is the spring-forward day in New York
	before := time.Date(2026, 3, 7, 23, 0, 0, 0, loc)
	after := time.Date(2026, 3, 9, 1, 0, 0, 0, loc)
	assert.Equal(t, int64(2), EpochDay(after)-EpochDay(before))
	assert.Equal(t, int64(0), EpochDay(time.Unix(0, 0).UTC()))
	assert.Equal(t, date(2026, 3, 9), FromEpochDay(EpochDay(after)))
}

func TestDayBounds(t *testing.T) {
	start, end := DayBounds(time.Date(2026, 2, 3, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, date(2026, 2, 3), start)
	assert.Equal(t, date(2026, 2, 4).Add(-time.Nanosecond), end)
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2026-02-17")
	require.NoError(t, err)
	assert.Equal(t, date(2026, 2, 17), d)
	assert.Equal(t, "2026-02-17", FormatDay(d))

	_, err = ParseDay("17/02/2026")
	assert.Error(t, err)
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(2024, time.February)
	assert.Equal(t, date(2024, 2, 1), first)
	assert.Equal(t, date(2024, 2, 29), last)

	first, last = MonthBounds(2026, 13)
	assert.Equal(t, date(2027, 1, 1), first)
	assert.Equal(t, date(2027, 1, 31), last)
}

func TestWeekdayOfMatchesTime(t *testing.T) {
	for d := date(2025, 12, 25); d.Before(date(2026, 1, 10)); d = d.AddDate(0, 0, 1) {
		assert.Equal(t, d.Weekday(), weekdayOf(EpochDay(d)), d.String())
	}
	assert.Equal(t, time.Wednesday, weekdayOf(-1))
}

// ── holidays ──

func TestHolidaySet(t *testing.T) {
	set, err := ParseHolidaySet([]string{"2026-02-17", "2026-02-16"})
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains(time.Date(2026, 2, 17, 18, 0, 0, 0, time.UTC)))
	assert.False(t, set.Contains(date(2026, 2, 18)))
	assert.Equal(t, []time.Time{date(2026, 2, 16), date(2026, 2, 17)}, set.Dates())

	var empty HolidaySet
	assert.False(t, empty.Contains(date(2026, 2, 17)))

	_, err = ParseHolidaySet([]string{"not-a-date"})
	assert.Error(t, err)
}

// ── generator ──

func TestNewGeneratorRejectsNonTuesdayAnchor(t *testing.T) {
	_, err := NewGenerator(date(2026, 2, 4), DefaultRotation)
	assert.ErrorIs(t, err, ErrAnchorNotTuesday)
}

func TestGeneratorFebruaryScenario(t *testing.T) {
	g := newTestGenerator(t)
	holidays := NewHolidaySet(date(2026, 2, 17))

	entries, err := g.Range(date(2026, 2, 3), date(2026, 2, 17), holidays)
	require.NoError(t, err)
	require.Len(t, entries, 5)

	expected := []struct {
		date    time.Time
		group   string
		slot    string
		cycle   Cycle
		holiday bool
	}{
		{date(2026, 2, 3), "Fe", "Fe", CycleA, false},
		{date(2026, 2, 5), "Esperanza", "Esperanza", CycleA, false},
		{date(2026, 2, 10), "Caridad", "Caridad", CycleB, false},
		{date(2026, 2, 12), "Amor", "Amor", CycleB, false},
		{date(2026, 2, 17), "", "Fe", CycleA, true},
	}
	for i, want := range expected {
		got := entries[i]
		assert.Equal(t, want.date, got.Date)
		assert.Equal(t, want.group, got.Group, FormatDay(want.date))
		assert.Equal(t, want.slot, got.SlotGroup)
		assert.Equal(t, want.cycle, got.Cycle)
		assert.Equal(t, want.holiday, got.IsHoliday)
	}
}

func TestGeneratorBeforeAnchor(t *testing.T) {
	g := newTestGenerator(t)

	assert.Equal(t, CycleB, g.Cycle(date(2026, 1, 27)))
	assert.Equal(t, CycleB, g.Cycle(date(2026, 1, 29)))
	assert.Equal(t, CycleA, g.Cycle(date(2026, 1, 20)))

	group, ok := g.SlotGroup(date(2026, 1, 1))
	require.True(t, ok)
	assert.Equal(t, "Amor", group)

	_, ok = g.SlotGroup(date(2026, 1, 2))
	assert.False(t, ok)
}

func TestGeneratorYearOnlyTuesdaysAndThursdays(t *testing.T) {
	g := newTestGenerator(t)

	// 53 Tuesdays or Thursdays only when the year starts on one of them
	counts := map[int]int{2024: 105, 2025: 104, 2026: 105, 2027: 104}
	for year, want := range counts {
		entries, err := g.Year(year, nil)
		require.NoError(t, err)
		assert.Len(t, entries, want, "year %d", year)

		for i, e := range entries {
			assert.Contains(t, []time.Weekday{time.Tuesday, time.Thursday}, e.Date.Weekday())
			assert.Equal(t, e.Date.Weekday(), e.Weekday)
			assert.Equal(t, year, e.Date.Year())
			if i > 0 {
				assert.True(t, entries[i-1].Date.Before(e.Date))
			}
		}
	}
}

func TestGeneratorCycleFlipsWeekly(t *testing.T) {
	g := newTestGenerator(t)
	entries, err := g.Year(2026, nil)
	require.NoError(t, err)

	lastByWeekday := map[time.Weekday]Entry{}
	for _, e := range entries {
		if prev, ok := lastByWeekday[e.Weekday]; ok {
			assert.Equal(t, 7*24*time.Hour, e.Date.Sub(prev.Date))
			assert.NotEqual(t, prev.Cycle, e.Cycle, FormatDay(e.Date))
		}
		lastByWeekday[e.Weekday] = e
	}

	// a Tuesday and the following Thursday share a cycle
	for i := 0; i+1 < len(entries); i++ {
		a, b := entries[i], entries[i+1]
		if a.Weekday == time.Tuesday && b.Weekday == time.Thursday {
			assert.Equal(t, a.Cycle, b.Cycle)
		}
	}
}

func TestGeneratorHolidaysFor2026(t *testing.T) {
	g := newTestGenerator(t)
	holidays, err := ParseHolidaySet([]string{"2026-01-01", "2026-02-17", "2026-04-02", "2026-12-24", "2026-12-31"})
	require.NoError(t, err)

	entries, err := g.Year(2026, holidays)
	require.NoError(t, err)

	count := 0
	for _, e := range entries {
		if e.IsHoliday {
			count++
			assert.Empty(t, e.Group)
			assert.NotEmpty(t, e.SlotGroup)
		} else {
			assert.Equal(t, e.SlotGroup, e.Group)
		}
	}
	assert.Equal(t, 5, count)
}

func TestGeneratorRangeEmpty(t *testing.T) {
	g := newTestGenerator(t)

	entries, err := g.Range(date(2026, 2, 10), date(2026, 2, 3), nil)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = g.Range(date(2026, 2, 6), date(2026, 2, 9), nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// ── merge ──

func TestMergeOverrideWins(t *testing.T) {
	g := newTestGenerator(t)
	from, to := date(2026, 2, 1), date(2026, 2, 28)
	entries, err := g.Range(from, to, NewHolidaySet(date(2026, 2, 17)))
	require.NoError(t, err)

	overrides := IndexOverrides([]Override{
		{Date: date(2026, 2, 3).Add(15 * time.Hour), GroupID: nil, Note: strPtr("Día liberado manualmente")},
		{Date: date(2026, 2, 17), GroupID: strPtr("g-fe"), GroupName: "Fe"},
	})

	days := g.Merge(entries, overrides, from, to)
	require.Len(t, days, len(entries))

	freed := days[0]
	assert.Equal(t, date(2026, 2, 3), freed.Date)
	assert.Equal(t, SourcePersisted, freed.Source)
	assert.Nil(t, freed.GroupID)
	assert.Empty(t, freed.GroupName)
	assert.False(t, freed.IsHoliday)
	assert.False(t, freed.HasService())
	assert.Equal(t, "Fe", freed.SlotGroup)
	require.NotNil(t, freed.Note)

	generated := days[1]
	assert.Equal(t, SourceGenerated, generated.Source)
	assert.Equal(t, "Esperanza", generated.GroupName)

	for _, d := range days {
		if d.Date.Equal(date(2026, 2, 17)) {
			assert.Equal(t, SourcePersisted, d.Source)
			assert.False(t, d.IsHoliday)
			assert.Equal(t, "Fe", d.GroupName)
			require.NotNil(t, d.GroupID)
			assert.Equal(t, "g-fe", *d.GroupID)
		}
	}
}

func TestMergeSubstitutionDay(t *testing.T) {
	g := newTestGenerator(t)
	from, to := date(2026, 2, 15), date(2026, 2, 21)
	entries, err := g.Range(from, to, NewHolidaySet(date(2026, 2, 17)))
	require.NoError(t, err)

	overrides := IndexOverrides([]Override{
		{Date: date(2026, 2, 18), GroupID: strPtr("g-fe"), GroupName: "Fe", Note: strPtr("Sustituye feriado")},
		{Date: date(2026, 3, 4), GroupID: strPtr("g-fe"), GroupName: "Fe"},
	})

	days := g.Merge(entries, overrides, from, to)
	require.Len(t, days, 3)
	assert.Equal(t, date(2026, 2, 17), days[0].Date)
	assert.True(t, days[0].IsHoliday)
	assert.Equal(t, date(2026, 2, 18), days[1].Date)
	assert.Equal(t, time.Wednesday, days[1].Weekday)
	assert.Equal(t, SourcePersisted, days[1].Source)
	assert.Empty(t, days[1].SlotGroup)
	assert.Equal(t, date(2026, 2, 19), days[2].Date)
}
