package service

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/calendar"
)

// ── ICS holidays ──────────────────────────────────────────────
//
// Only all-day VEVENTs (DTSTART;VALUE=DATE) are holidays. Timed events are
// skipped. A multi-day event yields one holiday per day, DTEND exclusive.
// RRULE is expanded into the requested year only, EXDATE removes dates.
// ─────────────────────────────────────────────────────────────

const (
	icsMaxEventDays = 31
	icsProductID    = "-//Caritas Parroquial//Calendario de Servicio//ES"
)

// ParsedHoliday one holiday date read from a calendar
type ParsedHoliday struct {
	Date time.Time
	Name string
}

// ParseHolidayICS reads all-day events as holidays. year > 0 keeps only that
// year and expands recurring events into it. Returns the number of skipped events.
func ParseHolidayICS(reader io.Reader, year int) ([]ParsedHoliday, int, error) {
	cal, err := ics.ParseCalendar(reader)
	if err != nil {
		return nil, 0, fmt.Errorf("parse ics: %w", err)
	}

	byDay := make(map[int64]ParsedHoliday)
	skipped := 0
	for _, evt := range cal.Events() {
		dates, name, ok := parseHolidayEvent(evt, year)
		if !ok {
			skipped++
			continue
		}
		for _, d := range dates {
			n := calendar.EpochDay(d)
			if _, seen := byDay[n]; !seen {
				byDay[n] = ParsedHoliday{Date: calendar.DayKey(d), Name: name}
			}
		}
	}

	result := make([]ParsedHoliday, 0, len(byDay))
	for _, h := range byDay {
		result = append(result, h)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, skipped, nil
}

// parseHolidayEvent dates covered by a single all-day VEVENT
func parseHolidayEvent(evt *ics.VEvent, year int) ([]time.Time, string, bool) {
	summary := evt.GetProperty(ics.ComponentPropertySummary)
	if summary == nil || strings.TrimSpace(summary.Value) == "" {
		return nil, "", false
	}
	name := strings.TrimSpace(summary.Value)

	start, ok := parseAllDay(evt.GetProperty(ics.ComponentPropertyDtStart))
	if !ok {
		return nil, "", false
	}

	span := 1
	if end, ok := parseAllDay(evt.GetProperty(ics.ComponentPropertyDtEnd)); ok {
		if days := int(calendar.EpochDay(end) - calendar.EpochDay(start)); days > 1 {
			span = days
		}
	}
	if span > icsMaxEventDays {
		span = icsMaxEventDays
	}

	starts := []time.Time{start}
	if rr := evt.GetProperty(ics.ComponentPropertyRrule); rr != nil && year > 0 {
		expanded, err := expandYearly(rr.Value, start, year)
		if err != nil {
			return nil, "", false
		}
		starts = expanded
	}

	exDates := parseExDates(evt)
	var dates []time.Time
	for _, s := range starts {
		for i := 0; i < span; i++ {
			d := s.AddDate(0, 0, i)
			if exDates[calendar.EpochDay(d)] {
				continue
			}
			if year > 0 && d.Year() != year {
				continue
			}
			dates = append(dates, d)
		}
	}
	if len(dates) == 0 {
		return nil, "", false
	}
	return dates, name, true
}

// expandYearly occurrences of a recurrence rule inside year
func expandYearly(rule string, dtStart time.Time, year int) ([]time.Time, error) {
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, err
	}
	opt.Dtstart = dtStart
	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, err
	}
	from, to := calendar.YearBounds(year)
	return r.Between(from, to, true), nil
}

// parseAllDay date of a DATE-valued property
func parseAllDay(prop *ics.IANAProperty) (time.Time, bool) {
	if prop == nil {
		return time.Time{}, false
	}
	isDate := len(prop.Value) == len("20060102")
	for k, v := range prop.ICalParameters {
		if strings.EqualFold(k, "VALUE") && len(v) > 0 && strings.EqualFold(v[0], "DATE") {
			isDate = true
		}
	}
	if !isDate {
		return time.Time{}, false
	}
	t, err := time.Parse("20060102", prop.Value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseExDates every EXDATE of the event, keyed by epoch day
func parseExDates(evt *ics.VEvent) map[int64]bool {
	exDates := make(map[int64]bool)
	for _, prop := range evt.Properties {
		if prop.IANAToken != string(ics.ComponentPropertyExdate) {
			continue
		}
		for _, raw := range strings.Split(prop.Value, ",") {
			raw = strings.TrimSpace(raw)
			if len(raw) >= 8 {
				if t, err := time.Parse("20060102", raw[:8]); err == nil {
					exDates[calendar.EpochDay(t)] = true
				}
			}
		}
	}
	return exDates
}

// ── ICS export ──

// BuildCalendarICS merged service days as all-day events. Days without a
// group and without a holiday flag are omitted.
func BuildCalendarICS(days []calendar.Day, stamp time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)

	for _, d := range days {
		var summary string
		switch {
		case d.IsHoliday:
			summary = "Feriado"
		case d.GroupName != "":
			summary = "Servicio: " + d.GroupName
		case d.GroupID != nil:
			summary = "Servicio"
		default:
			continue
		}

		evt := cal.AddEvent(calendar.FormatDay(d.Date) + "@caritas")
		evt.SetDtStampTime(stamp)
		evt.SetAllDayStartAt(d.Date)
		evt.SetAllDayEndAt(d.Date.AddDate(0, 0, 1))
		evt.SetSummary(summary)
		if d.Note != nil && *d.Note != "" {
			evt.SetDescription(*d.Note)
		}
	}

	return cal.Serialize()
}
