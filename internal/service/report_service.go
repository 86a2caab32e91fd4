package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/dto"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/model"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/repository"
)

const dashboardRecentLimit = 5

// ReportService aggregated statistics
type ReportService interface {
	GetReports(ctx context.Context) (*dto.ReportsResponse, error)
	GetDashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReportService creates a ReportService
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

// ────────────────────── GetReports ──────────────────────

func (s *reportService) GetReports(ctx context.Context) (*dto.ReportsResponse, error) {
	total, err := s.repo.Beneficiary.Count(ctx)
	if err != nil {
		s.logger.Error("count beneficiaries failed", zap.Error(err))
		return nil, err
	}

	totals, err := s.repo.Attendance.Totals(ctx)
	if err != nil {
		s.logger.Error("attendance totals failed", zap.Error(err))
		return nil, err
	}

	zones, err := s.repo.Beneficiary.CountByZone(ctx)
	if err != nil {
		s.logger.Error("count by zone failed", zap.Error(err))
		return nil, err
	}

	byGroup, err := s.repo.Attendance.TotalsByGroup(ctx)
	if err != nil {
		s.logger.Error("attendance totals by group failed", zap.Error(err))
		return nil, err
	}

	resp := &dto.ReportsResponse{
		General: dto.GeneralStats{
			Beneficiaries: total,
			Food:          totals.FoodCount,
			Medical:       totals.MedicalCount,
			Clothes:       totals.ClothesItems,
		},
		Zones:  make([]dto.ZoneStat, 0, len(zones)),
		Groups: make([]dto.GroupStat, 0, len(byGroup)),
	}
	for _, z := range zones {
		name := z.Zone
		if name == "" {
			name = model.ZoneUnknown
		}
		resp.Zones = append(resp.Zones, dto.ZoneStat{Name: name, Value: z.Count})
	}
	for _, g := range byGroup {
		resp.Groups = append(resp.Groups, dto.GroupStat{
			ID:           g.GroupID,
			Name:         g.Name,
			Food:         g.FoodCount,
			Medical:      g.MedicalCount,
			ClothesItems: g.ClothesItems,
		})
	}
	return resp, nil
}

// ────────────────────── GetDashboard ──────────────────────

func (s *reportService) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	total, err := s.repo.Beneficiary.Count(ctx)
	if err != nil {
		s.logger.Error("count beneficiaries failed", zap.Error(err))
		return nil, err
	}

	groups, err := s.repo.Group.ListWithCounts(ctx)
	if err != nil {
		s.logger.Error("list groups failed", zap.Error(err))
		return nil, err
	}

	recent, err := s.repo.Attendance.ListRecent(ctx, dashboardRecentLimit)
	if err != nil {
		s.logger.Error("list recent attendance failed", zap.Error(err))
		return nil, err
	}

	resp := &dto.DashboardResponse{
		TotalBeneficiaries: total,
		Groups:             make([]dto.GroupResponse, 0, len(groups)),
		RecentAttendances:  make([]dto.AttendanceResponse, 0, len(recent)),
	}
	for _, g := range groups {
		resp.Groups = append(resp.Groups, dto.GroupResponse{
			ID:               g.GroupID,
			Name:             g.Name,
			Description:      g.Description,
			BeneficiaryCount: g.BeneficiaryCount,
		})
	}
	for i := range recent {
		resp.RecentAttendances = append(resp.RecentAttendances, *toAttendanceResponse(&recent[i]))
	}
	return resp, nil
}
