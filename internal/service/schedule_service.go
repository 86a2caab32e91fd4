package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/dto"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/model"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/repository"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/calendar"
)

// ── schedule errors ──

var (
	ErrNoServiceScheduled = errors.New("no hay grupo asignado para esta fecha")
	ErrScheduleRange      = errors.New("rango de meses inválido")
)

// HolidayNote note written on seeded holiday rows
const HolidayNote = "Feriado Nacional"

var weekdayNames = [...]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

// ScheduleService service-day calendar use cases
type ScheduleService interface {
	// GetYear generated rotation for a year, before overrides
	GetYear(ctx context.Context, year int) (*dto.YearScheduleResponse, error)
	// GetCalendar merged view of a month
	GetCalendar(ctx context.Context, req *dto.CalendarQuery) (*dto.CalendarResponse, error)
	// GetDay merged view of one date
	GetDay(ctx context.Context, date string) (*dto.ScheduleDayResponse, error)
	// UpdateServiceDay assigns a group (nil frees the day) and clears the holiday flag
	UpdateServiceDay(ctx context.Context, date string, req *dto.UpdateServiceDayRequest) (*dto.ScheduleDayResponse, error)
	// MarkHoliday sets or clears the holiday flag of a date
	MarkHoliday(ctx context.Context, date string, req *dto.MarkHolidayRequest) (*dto.ScheduleDayResponse, error)
	// SeedYear persists the generated rotation of a year
	SeedYear(ctx context.Context, req *dto.SeedScheduleRequest) (*dto.SeedScheduleResponse, error)
	// MergedRange merged days in [from, to]
	MergedRange(ctx context.Context, from, to time.Time) ([]calendar.Day, error)
	// GroupDates service dates of a group over months consecutive months
	GroupDates(ctx context.Context, groupID string, year, startMonth, months int) (*model.Group, []time.Time, error)
	// ScheduledGroup group serving on date, ErrNoServiceScheduled when none
	ScheduledGroup(ctx context.Context, date time.Time) (*model.Group, error)
}

type scheduleService struct {
	repo     *repository.Repository
	gen      *calendar.Generator
	holidays HolidayService
	loc      *time.Location
	logger   *zap.Logger
}

// NewScheduleService creates a ScheduleService
func NewScheduleService(
	repo *repository.Repository,
	gen *calendar.Generator,
	holidays HolidayService,
	loc *time.Location,
	logger *zap.Logger,
) ScheduleService {
	return &scheduleService{repo: repo, gen: gen, holidays: holidays, loc: loc, logger: logger}
}

// ────────────────────── GetYear ──────────────────────

func (s *scheduleService) GetYear(ctx context.Context, year int) (*dto.YearScheduleResponse, error) {
	from, to := calendar.YearBounds(year)
	holidays, err := s.holidays.SetForRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	entries, err := s.gen.Year(year, holidays)
	if err != nil {
		s.logger.Error("generate year failed", zap.Int("year", year), zap.Error(err))
		return nil, err
	}

	resp := &dto.YearScheduleResponse{
		Year:     year,
		Anchor:   calendar.FormatDay(s.gen.Anchor()),
		Holidays: make([]string, 0, holidays.Len()),
		Entries:  make([]dto.ScheduleEntryResponse, 0, len(entries)),
	}
	for _, d := range holidays.Dates() {
		resp.Holidays = append(resp.Holidays, calendar.FormatDay(d))
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, dto.ScheduleEntryResponse{
			Date:      calendar.FormatDay(e.Date),
			Weekday:   weekdayNames[e.Weekday],
			Cycle:     e.Cycle.String(),
			SlotGroup: e.SlotGroup,
			Group:     e.Group,
			IsHoliday: e.IsHoliday,
		})
	}
	return resp, nil
}

// ────────────────────── GetCalendar / GetDay ──────────────────────

func (s *scheduleService) GetCalendar(ctx context.Context, req *dto.CalendarQuery) (*dto.CalendarResponse, error) {
	from, to := calendar.MonthBounds(req.Year, time.Month(req.Month))
	days, err := s.MergedRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	resp := &dto.CalendarResponse{
		Year:  req.Year,
		Month: req.Month,
		Days:  make([]dto.ScheduleDayResponse, 0, len(days)),
	}
	for _, d := range days {
		resp.Days = append(resp.Days, toScheduleDayResponse(d))
	}
	return resp, nil
}

func (s *scheduleService) GetDay(ctx context.Context, date string) (*dto.ScheduleDayResponse, error) {
	d, err := parseDateOrToday(date, s.loc)
	if err != nil {
		return nil, err
	}
	day, err := s.mergedDay(ctx, d)
	if err != nil {
		return nil, err
	}
	resp := toScheduleDayResponse(day)
	return &resp, nil
}

// mergedDay a date the generator skips and nobody persisted has no service
func (s *scheduleService) mergedDay(ctx context.Context, date time.Time) (calendar.Day, error) {
	days, err := s.MergedRange(ctx, date, date)
	if err != nil {
		return calendar.Day{}, err
	}
	if len(days) == 0 {
		return calendar.Day{
			Date:    date,
			Weekday: date.Weekday(),
			Cycle:   s.gen.Cycle(date),
			Source:  calendar.SourceGenerated,
		}, nil
	}
	return days[0], nil
}

func (s *scheduleService) MergedRange(ctx context.Context, from, to time.Time) ([]calendar.Day, error) {
	from, to = calendar.DayKey(from), calendar.DayKey(to)

	holidays, err := s.holidays.SetForRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	entries, err := s.gen.Range(from, to, holidays)
	if err != nil {
		s.logger.Error("generate range failed", zap.Error(err))
		return nil, err
	}

	rows, err := s.repo.ServiceDay.ListInRange(ctx, from, to)
	if err != nil {
		s.logger.Error("list service days failed",
			zap.String("from", calendar.FormatDay(from)),
			zap.String("to", calendar.FormatDay(to)),
			zap.Error(err),
		)
		return nil, err
	}

	overrides := make([]calendar.Override, 0, len(rows))
	for _, row := range rows {
		o := calendar.Override{
			Date:      row.Date,
			GroupID:   row.GroupID,
			IsHoliday: row.IsHoliday,
			Note:      row.Note,
		}
		if row.Group != nil {
			o.GroupName = row.Group.Name
		}
		overrides = append(overrides, o)
	}

	return s.gen.Merge(entries, calendar.IndexOverrides(overrides), from, to), nil
}

// ────────────────────── UpdateServiceDay ──────────────────────

func (s *scheduleService) UpdateServiceDay(ctx context.Context, date string, req *dto.UpdateServiceDayRequest) (*dto.ScheduleDayResponse, error) {
	d, err := calendar.ParseDay(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	if req.GroupID != nil {
		if _, err := s.repo.Group.GetByID(ctx, *req.GroupID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGroupNotFound
			}
			s.logger.Error("get group failed", zap.String("group_id", *req.GroupID), zap.Error(err))
			return nil, err
		}
	}

	row := &model.ServiceDay{Date: d, GroupID: req.GroupID, IsHoliday: false, Note: req.Note}
	if err := s.repo.ServiceDay.Upsert(ctx, row); err != nil {
		s.logger.Error("upsert service day failed", zap.String("date", date), zap.Error(err))
		return nil, err
	}

	s.logger.Info("service day updated", zap.String("date", date), zap.Stringp("group_id", req.GroupID))
	return s.GetDay(ctx, date)
}

// ────────────────────── MarkHoliday ──────────────────────

// Marking clears the group. Unmarking restores the rotation owner when that group exists.
func (s *scheduleService) MarkHoliday(ctx context.Context, date string, req *dto.MarkHolidayRequest) (*dto.ScheduleDayResponse, error) {
	d, err := calendar.ParseDay(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	row := &model.ServiceDay{Date: d, IsHoliday: *req.IsHoliday, Note: req.Note}
	if row.IsHoliday {
		if row.Note == nil {
			note := HolidayNote
			row.Note = &note
		}
	} else if slot, ok := s.gen.SlotGroup(d); ok {
		group, err := s.repo.Group.GetByName(ctx, slot)
		switch {
		case err == nil:
			row.GroupID = &group.GroupID
		case !errors.Is(err, gorm.ErrRecordNotFound):
			s.logger.Error("get group by name failed", zap.String("name", slot), zap.Error(err))
			return nil, err
		}
	}

	if err := s.repo.ServiceDay.Upsert(ctx, row); err != nil {
		s.logger.Error("upsert service day failed", zap.String("date", date), zap.Error(err))
		return nil, err
	}
	return s.GetDay(ctx, date)
}

// ────────────────────── SeedYear ──────────────────────

func (s *scheduleService) SeedYear(ctx context.Context, req *dto.SeedScheduleRequest) (*dto.SeedScheduleResponse, error) {
	from, to := calendar.YearBounds(req.Year)
	holidays, err := s.holidays.SetForRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	entries, err := s.gen.Year(req.Year, holidays)
	if err != nil {
		return nil, err
	}

	groups, err := s.repo.Group.List(ctx)
	if err != nil {
		s.logger.Error("list groups failed", zap.Error(err))
		return nil, err
	}
	idByName := make(map[string]string, len(groups))
	for _, g := range groups {
		idByName[g.Name] = g.GroupID
	}

	rows := make([]model.ServiceDay, 0, len(entries))
	holidayCount := 0
	for _, e := range entries {
		row := model.ServiceDay{Date: e.Date, IsHoliday: e.IsHoliday}
		if e.IsHoliday {
			note := HolidayNote
			row.Note = &note
			holidayCount++
		} else if id, ok := idByName[e.Group]; ok {
			groupID := id
			row.GroupID = &groupID
		} else {
			s.logger.Warn("rotation group missing, day left unassigned",
				zap.String("group", e.Group),
				zap.String("date", calendar.FormatDay(e.Date)),
			)
		}
		rows = append(rows, row)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("begin tx failed", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	written, err := s.repo.WithTx(tx).ServiceDay.UpsertBatch(ctx, rows, req.Overwrite)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("seed service days failed", zap.Int("year", req.Year), zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("commit tx failed", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("schedule seeded",
		zap.Int("year", req.Year),
		zap.Int("generated", len(rows)),
		zap.Int64("written", written),
		zap.Bool("overwrite", req.Overwrite),
	)

	return &dto.SeedScheduleResponse{
		Year:      req.Year,
		Generated: len(rows),
		Written:   written,
		Holidays:  holidayCount,
	}, nil
}

// ────────────────────── GroupDates / ScheduledGroup ──────────────────────

func (s *scheduleService) GroupDates(ctx context.Context, groupID string, year, startMonth, months int) (*model.Group, []time.Time, error) {
	if startMonth < 1 || startMonth > 12 || months < 1 || months > 12 {
		return nil, nil, ErrScheduleRange
	}

	group, err := s.repo.Group.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrGroupNotFound
		}
		s.logger.Error("get group failed", zap.String("group_id", groupID), zap.Error(err))
		return nil, nil, err
	}

	from, _ := calendar.MonthBounds(year, time.Month(startMonth))
	_, to := calendar.MonthBounds(year, time.Month(startMonth+months-1))
	days, err := s.MergedRange(ctx, from, to)
	if err != nil {
		return nil, nil, err
	}

	var dates []time.Time
	for _, d := range days {
		if servesGroup(d, group) {
			dates = append(dates, d.Date)
		}
	}
	return group, dates, nil
}

func (s *scheduleService) ScheduledGroup(ctx context.Context, date time.Time) (*model.Group, error) {
	day, err := s.mergedDay(ctx, calendar.DayKey(date))
	if err != nil {
		return nil, err
	}
	if day.IsHoliday || !day.HasService() {
		return nil, ErrNoServiceScheduled
	}

	if day.GroupID != nil {
		group, err := s.repo.Group.GetByID(ctx, *day.GroupID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGroupNotFound
			}
			return nil, err
		}
		return group, nil
	}

	group, err := s.repo.Group.GetByName(ctx, day.GroupName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		s.logger.Error("get group by name failed", zap.String("name", day.GroupName), zap.Error(err))
		return nil, err
	}
	return group, nil
}

// servesGroup persisted days match by id, generated days by rotation name
func servesGroup(d calendar.Day, g *model.Group) bool {
	if d.IsHoliday {
		return false
	}
	if d.GroupID != nil {
		return *d.GroupID == g.GroupID
	}
	return d.Source == calendar.SourceGenerated && d.GroupName == g.Name
}

func toScheduleDayResponse(d calendar.Day) dto.ScheduleDayResponse {
	resp := dto.ScheduleDayResponse{
		Date:      calendar.FormatDay(d.Date),
		Weekday:   weekdayNames[d.Weekday],
		GroupID:   d.GroupID,
		GroupName: d.GroupName,
		IsHoliday: d.IsHoliday,
		Note:      d.Note,
		SlotGroup: d.SlotGroup,
		Source:    d.Source,
	}
	if d.SlotGroup != "" {
		resp.Cycle = d.Cycle.String()
	}
	return resp
}
