package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/dto"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/model"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/repository"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/calendar"
	pkgerrors "github.com/suplidoraindustrial6s-lab/caritas-app/pkg/errors"
)

// ── service day errors ──

var (
	ErrCloseDayInProgress = errors.New("el cierre de este día ya está en curso, intente de nuevo")
)

const defaultCloseLockTTL = 30 * time.Second

// ServiceDayService day close and day report
type ServiceDayService interface {
	// CloseDay writes an Ausente row for every active roster member without a record
	CloseDay(ctx context.Context, req *dto.CloseDayRequest) (*dto.CloseDayResponse, error)
	GetDayReport(ctx context.Context, req *dto.DayReportQuery) (*dto.DayReportResponse, error)
}

type serviceDayService struct {
	repo    *repository.Repository
	locker  Locker
	lockTTL time.Duration
	loc     *time.Location
	logger  *zap.Logger
}

// NewServiceDayService creates a ServiceDayService. locker may be nil.
func NewServiceDayService(
	repo *repository.Repository,
	locker Locker,
	lockTTL time.Duration,
	loc *time.Location,
	logger *zap.Logger,
) ServiceDayService {
	if lockTTL <= 0 {
		lockTTL = defaultCloseLockTTL
	}
	return &serviceDayService{repo: repo, locker: locker, lockTTL: lockTTL, loc: loc, logger: logger}
}

// ────────────────────── CloseDay ──────────────────────

func (s *serviceDayService) CloseDay(ctx context.Context, req *dto.CloseDayRequest) (*dto.CloseDayResponse, error) {
	date, err := parseDateOrToday(req.Date, s.loc)
	if err != nil {
		return nil, err
	}
	dateKey := calendar.FormatDay(date)

	if _, err := s.getGroup(ctx, req.GroupID); err != nil {
		return nil, err
	}

	if s.locker != nil {
		key := fmt.Sprintf("close_day:%s:%s", req.GroupID, dateKey)
		token, err := s.locker.AcquireLock(ctx, key, s.lockTTL)
		if err != nil {
			if errors.Is(err, pkgerrors.ErrLockNotAcquired) {
				return nil, ErrCloseDayInProgress
			}
			// the unique constraint still guards the insert
			s.logger.Warn("close day lock unavailable, continuing", zap.String("key", key), zap.Error(err))
		} else {
			defer func() {
				if err := s.locker.ReleaseLock(context.WithoutCancel(ctx), key, token); err != nil {
					s.logger.Warn("release close day lock failed", zap.String("key", key), zap.Error(err))
				}
			}()
		}
	}

	roster, err := s.repo.Beneficiary.ListActiveByGroup(ctx, req.GroupID)
	if err != nil {
		s.logger.Error("list group roster failed", zap.String("group_id", req.GroupID), zap.Error(err))
		return nil, err
	}

	start, end := calendar.DayBounds(date)
	records, err := s.repo.Attendance.ListByGroupAndDateRange(ctx, req.GroupID, start, end)
	if err != nil {
		s.logger.Error("list day attendance failed",
			zap.String("group_id", req.GroupID),
			zap.String("date", dateKey),
			zap.Error(err),
		)
		return nil, err
	}

	attended := make(map[string]struct{}, len(records))
	for _, r := range records {
		attended[r.BeneficiaryID] = struct{}{}
	}

	present := 0
	absentees := make([]model.Attendance, 0, len(roster))
	for _, b := range roster {
		if _, ok := attended[b.BeneficiaryID]; ok {
			present++
			continue
		}
		absentees = append(absentees, model.Attendance{
			BeneficiaryID: b.BeneficiaryID,
			Date:          date,
			Status:        model.AttendanceAbsent,
		})
	}

	inserted, err := s.insertAbsences(ctx, absentees)
	if err != nil {
		s.logger.Error("close day failed",
			zap.String("group_id", req.GroupID),
			zap.String("date", dateKey),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("service day closed",
		zap.String("group_id", req.GroupID),
		zap.String("date", dateKey),
		zap.Int("roster", len(roster)),
		zap.Int("present", present),
		zap.Int64("absent", inserted),
	)

	return &dto.CloseDayResponse{
		GroupID: req.GroupID,
		Date:    dateKey,
		Total:   len(roster),
		Present: present,
		Absent:  int(inserted),
	}, nil
}

// insertAbsences all-or-nothing; rows that already exist are skipped
func (s *serviceDayService) insertAbsences(ctx context.Context, rows []model.Attendance) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	inserted, err := s.repo.WithTx(tx).Attendance.BatchCreate(ctx, rows)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return 0, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return 0, err
		}
	}
	return inserted, nil
}

// ────────────────────── GetDayReport ──────────────────────

func (s *serviceDayService) GetDayReport(ctx context.Context, req *dto.DayReportQuery) (*dto.DayReportResponse, error) {
	date, err := parseDateOrToday(req.Date, s.loc)
	if err != nil {
		return nil, err
	}

	group, err := s.getGroup(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}

	start, end := calendar.DayBounds(date)
	records, err := s.repo.Attendance.ListByGroupAndDateRange(ctx, req.GroupID, start, end)
	if err != nil {
		s.logger.Error("list day attendance failed",
			zap.String("group_id", req.GroupID),
			zap.String("date", calendar.FormatDay(date)),
			zap.Error(err),
		)
		return nil, err
	}

	resp := &dto.DayReportResponse{
		GroupID:   group.GroupID,
		GroupName: group.Name,
		Date:      calendar.FormatDay(date),
		Records:   make([]dto.AttendanceResponse, 0, len(records)),
	}
	for i := range records {
		resp.Records = append(resp.Records, *toAttendanceResponse(&records[i]))
	}
	resp.Stats = dayReportStats(records)
	return resp, nil
}

func dayReportStats(records []model.Attendance) dto.DayReportStats {
	stats := dto.DayReportStats{TotalBeneficiaries: len(records)}
	for _, r := range records {
		if r.IsAbsent() {
			stats.Absent++
		} else {
			stats.Present++
		}
		stats.FoodPacks += r.FoodQuantity
		stats.ClothesPieces += r.ClothesQuantity
		if r.ReceivedMedical {
			stats.MedicalAttention++
		}
	}
	return stats
}

func (s *serviceDayService) getGroup(ctx context.Context, groupID string) (*model.Group, error) {
	group, err := s.repo.Group.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		s.logger.Error("get group failed", zap.String("group_id", groupID), zap.Error(err))
		return nil, err
	}
	return group, nil
}
