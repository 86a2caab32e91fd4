package service

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/dto"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/model"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/repository"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/calendar"
)

// ── holiday errors ──

var (
	ErrHolidayNotFound = errors.New("feriado no encontrado")
	ErrHolidayExists   = errors.New("ya existe un feriado en esa fecha")
	ErrHolidayICSParse = errors.New("no se pudo leer el archivo ICS")
	ErrHolidayICSEmpty = errors.New("el archivo ICS no contiene eventos de día completo")
)

// Holiday sources
const (
	HolidaySourceManual = "manual"
	HolidaySourceICS    = "ics"
	HolidaySourceSeed   = "seed"
)

// HolidayService holiday table and per-year holiday sets
type HolidayService interface {
	List(ctx context.Context, year int) ([]dto.HolidayResponse, error)
	Create(ctx context.Context, req *dto.CreateHolidayRequest) (*dto.HolidayResponse, error)
	Delete(ctx context.Context, id string) error
	// ImportICS upserts every all-day event. year > 0 expands yearly rules into that year.
	ImportICS(ctx context.Context, reader io.Reader, year int) (*dto.ImportHolidaysResponse, error)
	// SetForRange holidays covering [from, to]. Years without stored rows fall back to the configured table.
	SetForRange(ctx context.Context, from, to time.Time) (calendar.HolidaySet, error)
}

type holidayService struct {
	repo     *repository.Repository
	fallback map[string][]string
	logger   *zap.Logger
}

// NewHolidayService creates a HolidayService. fallback maps "2026" to dates.
func NewHolidayService(repo *repository.Repository, fallback map[string][]string, logger *zap.Logger) HolidayService {
	return &holidayService{repo: repo, fallback: fallback, logger: logger}
}

// ────────────────────── List / Create / Delete ──────────────────────

func (s *holidayService) List(ctx context.Context, year int) ([]dto.HolidayResponse, error) {
	from, to := calendar.YearBounds(year)
	list, err := s.repo.Holiday.ListInRange(ctx, from, to)
	if err != nil {
		s.logger.Error("list holidays failed", zap.Int("year", year), zap.Error(err))
		return nil, err
	}

	result := make([]dto.HolidayResponse, 0, len(list))
	for i := range list {
		result = append(result, toHolidayResponse(&list[i]))
	}
	return result, nil
}

func (s *holidayService) Create(ctx context.Context, req *dto.CreateHolidayRequest) (*dto.HolidayResponse, error) {
	date, err := calendar.ParseDay(strings.TrimSpace(req.Date))
	if err != nil {
		return nil, ErrInvalidDate
	}

	h := &model.Holiday{Date: date, Name: strings.TrimSpace(req.Name), Source: HolidaySourceManual}
	if err := s.repo.Holiday.Create(ctx, h); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrHolidayExists
		}
		s.logger.Error("create holiday failed", zap.String("date", req.Date), zap.Error(err))
		return nil, err
	}

	resp := toHolidayResponse(h)
	return &resp, nil
}

func (s *holidayService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Holiday.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHolidayNotFound
		}
		s.logger.Error("delete holiday failed", zap.String("holiday_id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ImportICS ──────────────────────

func (s *holidayService) ImportICS(ctx context.Context, reader io.Reader, year int) (*dto.ImportHolidaysResponse, error) {
	parsed, skipped, err := ParseHolidayICS(reader, year)
	if err != nil {
		return nil, ErrHolidayICSParse
	}
	if len(parsed) == 0 {
		return nil, ErrHolidayICSEmpty
	}

	resp := &dto.ImportHolidaysResponse{Skipped: skipped, Dates: make([]string, 0, len(parsed))}
	for _, p := range parsed {
		h := &model.Holiday{Date: p.Date, Name: p.Name, Source: HolidaySourceICS}
		if err := s.repo.Holiday.Upsert(ctx, h); err != nil {
			s.logger.Error("upsert holiday failed", zap.String("date", calendar.FormatDay(p.Date)), zap.Error(err))
			return nil, err
		}
		resp.Imported++
		resp.Dates = append(resp.Dates, calendar.FormatDay(p.Date))
	}

	s.logger.Info("holidays imported", zap.Int("imported", resp.Imported), zap.Int("skipped", skipped))
	return resp, nil
}

// ────────────────────── SetForRange ──────────────────────

func (s *holidayService) SetForRange(ctx context.Context, from, to time.Time) (calendar.HolidaySet, error) {
	from, to = calendar.DayKey(from), calendar.DayKey(to)
	set := calendar.NewHolidaySet()

	for year := from.Year(); year <= to.Year(); year++ {
		dates, err := s.yearDates(ctx, year)
		if err != nil {
			return nil, err
		}
		for _, d := range dates {
			if !d.Before(from) && !d.After(to) {
				set.Add(d)
			}
		}
	}
	return set, nil
}

// yearDates stored holidays of year, or the configured table when none are stored
func (s *holidayService) yearDates(ctx context.Context, year int) ([]time.Time, error) {
	yearStart, yearEnd := calendar.YearBounds(year)
	stored, err := s.repo.Holiday.ListInRange(ctx, yearStart, yearEnd)
	if err != nil {
		s.logger.Error("list holidays failed", zap.Int("year", year), zap.Error(err))
		return nil, err
	}

	if len(stored) > 0 {
		dates := make([]time.Time, 0, len(stored))
		for _, h := range stored {
			dates = append(dates, h.Date)
		}
		return dates, nil
	}

	fallback := s.fallback[strconv.Itoa(year)]
	dates := make([]time.Time, 0, len(fallback))
	for _, raw := range fallback {
		d, err := calendar.ParseDay(raw)
		if err != nil {
			s.logger.Warn("skip invalid fallback holiday", zap.String("date", raw))
			continue
		}
		dates = append(dates, d)
	}
	return dates, nil
}

func toHolidayResponse(h *model.Holiday) dto.HolidayResponse {
	return dto.HolidayResponse{
		ID:     h.HolidayID,
		Date:   calendar.FormatDay(h.Date),
		Name:   h.Name,
		Source: h.Source,
	}
}
