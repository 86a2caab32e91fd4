package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/dto"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/service"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/calendar"
)

const closeDayTimeout = 2 * time.Minute

// Scheduler runs the automatic day close.
type Scheduler struct {
	cron       *cron.Cron
	spec       string
	schedule   service.ScheduleService
	serviceDay service.ServiceDayService
	loc        *time.Location
	now        func() time.Time
	logger     *zap.Logger
}

// NewScheduler creates a scheduler firing on spec (standard 5-field cron) in loc.
func NewScheduler(spec string, loc *time.Location, schedule service.ScheduleService, serviceDay service.ServiceDayService, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		spec:       spec,
		schedule:   schedule,
		serviceDay: serviceDay,
		loc:        loc,
		now:        time.Now,
		logger:     logger,
	}
}

// Start registers the close-day job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runCloseDay); err != nil {
		return fmt.Errorf("schedule auto close %q: %w", s.spec, err)
	}
	s.logger.Info("scheduler started", zap.String("auto_close_cron", s.spec))
	s.cron.Start()
	return nil
}

// Stop stops the loop and waits for a running job.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runCloseDay() {
	ctx, cancel := context.WithTimeout(context.Background(), closeDayTimeout)
	defer cancel()

	if _, err := s.CloseToday(ctx); err != nil {
		s.logger.Error("auto close failed", zap.Error(err))
	}
}

// CloseToday closes the group scheduled today. A nil response with a nil
// error means nothing was scheduled.
func (s *Scheduler) CloseToday(ctx context.Context) (*dto.CloseDayResponse, error) {
	today := calendar.DayKey(s.now().In(s.loc))

	group, err := s.schedule.ScheduledGroup(ctx, today)
	if err != nil {
		if errors.Is(err, service.ErrNoServiceScheduled) {
			s.logger.Info("auto close skipped, no service today", zap.String("date", calendar.FormatDay(today)))
			return nil, nil
		}
		return nil, err
	}

	resp, err := s.serviceDay.CloseDay(ctx, &dto.CloseDayRequest{
		GroupID: group.GroupID,
		Date:    calendar.FormatDay(today),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("auto close done",
		zap.String("group", group.Name),
		zap.String("date", resp.Date),
		zap.Int("absent", resp.Absent),
	)
	return resp, nil
}
