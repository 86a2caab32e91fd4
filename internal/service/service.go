package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/suplidoraindustrial6s-lab/caritas-app/config"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/repository"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/calendar"
)

// ── common errors ──

var (
	ErrInvalidDate = errors.New("fecha inválida, use el formato AAAA-MM-DD")
)

// Locker serializes work per key. *redis.Client implements it.
type Locker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (string, error)
	ReleaseLock(ctx context.Context, key, token string) error
}

// Service aggregate entry point for every service
type Service struct {
	Group       GroupService
	Beneficiary BeneficiaryService
	Attendance  AttendanceService
	Holiday     HolidayService
	Schedule    ScheduleService
	ServiceDay  ServiceDayService
	Import      ImportService
	Export      ExportService
	Report      ReportService
	Upload      UploadService
}

// NewService wires every service. locker may be nil, close-day then relies
// on the attendance unique constraint alone.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	locker Locker,
	logger *zap.Logger,
) (*Service, error) {
	anchor, err := cfg.Schedule.Anchor()
	if err != nil {
		return nil, fmt.Errorf("parse schedule anchor: %w", err)
	}
	gen, err := calendar.NewGenerator(anchor, RotationFromConfig(&cfg.Schedule))
	if err != nil {
		return nil, err
	}
	loc := cfg.Schedule.Location()

	holidaySvc := NewHolidayService(repo, cfg.Schedule.Holidays, logger)
	scheduleSvc := NewScheduleService(repo, gen, holidaySvc, loc, logger)
	serviceDaySvc := NewServiceDayService(repo, locker, cfg.Schedule.CloseLockTTL, loc, logger)

	return &Service{
		Group:       NewGroupService(repo, gen.Rotation(), logger),
		Beneficiary: NewBeneficiaryService(repo, logger),
		Attendance:  NewAttendanceService(repo, loc, logger),
		Holiday:     holidaySvc,
		Schedule:    scheduleSvc,
		ServiceDay:  serviceDaySvc,
		Import:      NewImportService(repo, loc, logger),
		Export:      NewExportService(repo, scheduleSvc, serviceDaySvc, logger),
		Report:      NewReportService(repo, logger),
		Upload:      NewUploadService(&cfg.Upload, logger),
	}, nil
}

// RotationFromConfig slot table from the schedule config
func RotationFromConfig(cfg *config.ScheduleConfig) calendar.Rotation {
	return calendar.Rotation{
		TuesdayA:  cfg.Rotation.TuesdayA,
		TuesdayB:  cfg.Rotation.TuesdayB,
		ThursdayA: cfg.Rotation.ThursdayA,
		ThursdayB: cfg.Rotation.ThursdayB,
	}
}

// parseDateOrToday "2006-01-02" as a day key; empty means today in loc
func parseDateOrToday(raw string, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return calendar.Today(loc), nil
	}
	d, err := calendar.ParseDay(raw)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}
