package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/dto"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/model"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/repository"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/calendar"
)

// ── group errors ──

var (
	ErrGroupNotFound = errors.New("grupo no encontrado")
)

// WaitingListGroup group for beneficiaries pending assignment
const WaitingListGroup = "Lista de Espera"

// GroupService group use cases
type GroupService interface {
	List(ctx context.Context) ([]dto.GroupResponse, error)
	GetWithRoster(ctx context.Context, id string) (*dto.GroupDetailResponse, error)
	// Seed creates the rotation groups and the waiting list when missing
	Seed(ctx context.Context) ([]dto.GroupResponse, error)
}

type groupService struct {
	repo     *repository.Repository
	rotation calendar.Rotation
	logger   *zap.Logger
}

// NewGroupService creates a GroupService
func NewGroupService(repo *repository.Repository, rotation calendar.Rotation, logger *zap.Logger) GroupService {
	return &groupService{repo: repo, rotation: rotation, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *groupService) List(ctx context.Context) ([]dto.GroupResponse, error) {
	groups, err := s.repo.Group.ListWithCounts(ctx)
	if err != nil {
		s.logger.Error("list groups failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.GroupResponse, 0, len(groups))
	for _, g := range groups {
		result = append(result, dto.GroupResponse{
			ID:               g.GroupID,
			Name:             g.Name,
			Description:      g.Description,
			BeneficiaryCount: g.BeneficiaryCount,
		})
	}
	return result, nil
}

// ────────────────────── GetWithRoster ──────────────────────

func (s *groupService) GetWithRoster(ctx context.Context, id string) (*dto.GroupDetailResponse, error) {
	group, err := s.repo.Group.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		s.logger.Error("get group failed", zap.String("group_id", id), zap.Error(err))
		return nil, err
	}

	roster, err := s.repo.Beneficiary.ListActiveByGroup(ctx, id)
	if err != nil {
		s.logger.Error("list group roster failed", zap.String("group_id", id), zap.Error(err))
		return nil, err
	}

	resp := &dto.GroupDetailResponse{
		ID:            group.GroupID,
		Name:          group.Name,
		Description:   group.Description,
		Beneficiaries: make([]dto.BeneficiaryBrief, 0, len(roster)),
	}
	for i := range roster {
		resp.Beneficiaries = append(resp.Beneficiaries, *toBeneficiaryBrief(&roster[i]))
	}
	return resp, nil
}

// ────────────────────── Seed ──────────────────────

func (s *groupService) Seed(ctx context.Context) ([]dto.GroupResponse, error) {
	names := append(s.rotation.Names(), WaitingListGroup)

	result := make([]dto.GroupResponse, 0, len(names))
	for _, name := range names {
		group, err := s.repo.Group.UpsertByName(ctx, &model.Group{Name: name})
		if err != nil {
			s.logger.Error("seed group failed", zap.String("name", name), zap.Error(err))
			return nil, err
		}
		result = append(result, dto.GroupResponse{ID: group.GroupID, Name: group.Name, Description: group.Description})
	}

	s.logger.Info("groups seeded", zap.Int("count", len(result)))
	return result, nil
}

func toGroupBrief(g *model.Group) *dto.GroupBrief {
	if g == nil {
		return nil
	}
	return &dto.GroupBrief{ID: g.GroupID, Name: g.Name}
}
