package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/dto"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/model"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/repository"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/calendar"
	pkgerrors "github.com/suplidoraindustrial6s-lab/caritas-app/pkg/errors"
)

// ── beneficiary errors ──

var (
	ErrBeneficiaryNotFound      = errors.New("beneficiario no encontrado")
	ErrBeneficiaryNationalIDUse = errors.New("la cédula ya está registrada")
	ErrBeneficiaryVersionStale  = errors.New("el beneficiario fue modificado por otra operación, recargue e intente de nuevo")
)

const recentAttendanceLimit = 10

// BeneficiaryService beneficiary use cases
type BeneficiaryService interface {
	Create(ctx context.Context, req *dto.CreateBeneficiaryRequest) (*dto.BeneficiaryResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateBeneficiaryRequest) (*dto.BeneficiaryResponse, error)
	Move(ctx context.Context, id string, req *dto.MoveBeneficiaryRequest) (*dto.BeneficiaryResponse, error)
	SetStatus(ctx context.Context, id string, req *dto.SetStatusRequest) (*dto.BeneficiaryResponse, error)
	List(ctx context.Context, req *dto.ListBeneficiariesRequest) ([]dto.BeneficiaryResponse, int64, error)
	GetByID(ctx context.Context, id string) (*dto.BeneficiaryDetailResponse, error)
}

type beneficiaryService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBeneficiaryService creates a BeneficiaryService
func NewBeneficiaryService(repo *repository.Repository, logger *zap.Logger) BeneficiaryService {
	return &beneficiaryService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *beneficiaryService) Create(ctx context.Context, req *dto.CreateBeneficiaryRequest) (*dto.BeneficiaryResponse, error) {
	nationalID := strings.TrimSpace(req.NationalID)
	if _, err := s.repo.Beneficiary.GetByNationalID(ctx, nationalID); err == nil {
		return nil, ErrBeneficiaryNationalIDUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("check national id failed", zap.Error(err))
		return nil, err
	}

	if err := s.ensureGroup(ctx, req.GroupID); err != nil {
		return nil, err
	}

	birthDate, err := parseOptionalDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	children, err := toChildModels(req.Children)
	if err != nil {
		return nil, err
	}

	b := &model.Beneficiary{
		FullName:       strings.TrimSpace(req.FullName),
		NationalID:     nationalID,
		BirthDate:      birthDate,
		PlaceOfBirth:   req.PlaceOfBirth,
		Gender:         defaultGender(req.Gender),
		Address:        req.Address,
		Zone:           req.Zone,
		PhoneNumber:    req.PhoneNumber,
		ChronicIllness: req.ChronicIllness,
		PhotoURL:       req.PhotoURL,
		HasChildren:    len(children) > 0,
		Observations:   req.Observations,
		Status:         model.StatusActive,
		GroupID:        req.GroupID,
		Children:       children,
	}

	if err := s.repo.Beneficiary.Create(ctx, b); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrBeneficiaryNationalIDUse
		}
		s.logger.Error("create beneficiary failed", zap.Error(err))
		return nil, err
	}

	return s.reload(ctx, b.BeneficiaryID)
}

// ────────────────────── Update ──────────────────────

func (s *beneficiaryService) Update(ctx context.Context, id string, req *dto.UpdateBeneficiaryRequest) (*dto.BeneficiaryResponse, error) {
	b, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Version = req.Version

	if req.FullName != nil {
		b.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.NationalID != nil {
		nationalID := strings.TrimSpace(*req.NationalID)
		if nationalID != b.NationalID {
			if _, err := s.repo.Beneficiary.GetByNationalID(ctx, nationalID); err == nil {
				return nil, ErrBeneficiaryNationalIDUse
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		b.NationalID = nationalID
	}
	if req.BirthDate != nil {
		if b.BirthDate, err = parseOptionalDate(*req.BirthDate); err != nil {
			return nil, err
		}
	}
	if req.PlaceOfBirth != nil {
		b.PlaceOfBirth = *req.PlaceOfBirth
	}
	if req.Gender != nil {
		b.Gender = defaultGender(*req.Gender)
	}
	if req.Address != nil {
		b.Address = *req.Address
	}
	if req.Zone != nil {
		b.Zone = *req.Zone
	}
	if req.PhoneNumber != nil {
		b.PhoneNumber = *req.PhoneNumber
	}
	if req.ChronicIllness != nil {
		b.ChronicIllness = *req.ChronicIllness
	}
	if req.PhotoURL != nil {
		b.PhotoURL = *req.PhotoURL
	}
	if req.Observations != nil {
		b.Observations = *req.Observations
	}

	var children []model.Child
	if req.Children != nil {
		if children, err = toChildModels(*req.Children); err != nil {
			return nil, err
		}
		b.HasChildren = len(children) > 0
	}

	// beneficiary row and children list change together
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

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Beneficiary.Update(ctx, b); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrBeneficiaryVersionStale
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrBeneficiaryNationalIDUse
		}
		s.logger.Error("update beneficiary failed", zap.String("beneficiary_id", id), zap.Error(err))
		return nil, err
	}

	if req.Children != nil {
		if err := txRepo.Beneficiary.ReplaceChildren(ctx, id, children); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("replace children failed", zap.String("beneficiary_id", id), zap.Error(err))
			return nil, err
		}
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("commit tx failed", zap.Error(err))
			return nil, err
		}
	}

	return s.reload(ctx, id)
}

// ────────────────────── Move / SetStatus ──────────────────────

func (s *beneficiaryService) Move(ctx context.Context, id string, req *dto.MoveBeneficiaryRequest) (*dto.BeneficiaryResponse, error) {
	if err := s.ensureGroup(ctx, req.GroupID); err != nil {
		return nil, err
	}
	if err := s.repo.Beneficiary.UpdateGroup(ctx, id, req.GroupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBeneficiaryNotFound
		}
		s.logger.Error("move beneficiary failed", zap.String("beneficiary_id", id), zap.Error(err))
		return nil, err
	}
	return s.reload(ctx, id)
}

func (s *beneficiaryService) SetStatus(ctx context.Context, id string, req *dto.SetStatusRequest) (*dto.BeneficiaryResponse, error) {
	if err := s.repo.Beneficiary.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBeneficiaryNotFound
		}
		s.logger.Error("set beneficiary status failed", zap.String("beneficiary_id", id), zap.Error(err))
		return nil, err
	}
	return s.reload(ctx, id)
}

// ────────────────────── Queries ──────────────────────

func (s *beneficiaryService) List(ctx context.Context, req *dto.ListBeneficiariesRequest) ([]dto.BeneficiaryResponse, int64, error) {
	list, total, err := s.repo.Beneficiary.List(ctx, repository.BeneficiaryFilter{
		GroupID:    req.GroupID,
		Unassigned: req.Unassigned,
		Status:     req.Status,
		Search:     req.Search,
		Offset:     req.GetOffset(),
		Limit:      req.GetPageSize(),
	})
	if err != nil {
		s.logger.Error("list beneficiaries failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.BeneficiaryResponse, 0, len(list))
	for i := range list {
		result = append(result, *toBeneficiaryResponse(&list[i]))
	}
	return result, total, nil
}

func (s *beneficiaryService) GetByID(ctx context.Context, id string) (*dto.BeneficiaryDetailResponse, error) {
	b, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	attendances, err := s.repo.Attendance.ListRecentByBeneficiary(ctx, id, recentAttendanceLimit)
	if err != nil {
		s.logger.Error("list beneficiary attendances failed", zap.String("beneficiary_id", id), zap.Error(err))
		return nil, err
	}

	resp := &dto.BeneficiaryDetailResponse{
		BeneficiaryResponse: *toBeneficiaryResponse(b),
		Children:            make([]dto.ChildResponse, 0, len(b.Children)),
		RecentAttendances:   make([]dto.AttendanceResponse, 0, len(attendances)),
	}
	for _, c := range b.Children {
		resp.Children = append(resp.Children, dto.ChildResponse{
			ID:           c.ChildID,
			FullName:     c.FullName,
			Gender:       c.Gender,
			NationalID:   c.NationalID,
			BirthDate:    formatOptionalDate(c.BirthDate),
			IsStudying:   c.IsStudying,
			Observations: c.Observations,
		})
	}
	for i := range attendances {
		resp.RecentAttendances = append(resp.RecentAttendances, *toAttendanceResponse(&attendances[i]))
	}
	return resp, nil
}

// ── helpers ──

func (s *beneficiaryService) get(ctx context.Context, id string) (*model.Beneficiary, error) {
	b, err := s.repo.Beneficiary.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBeneficiaryNotFound
		}
		s.logger.Error("get beneficiary failed", zap.String("beneficiary_id", id), zap.Error(err))
		return nil, err
	}
	return b, nil
}

func (s *beneficiaryService) reload(ctx context.Context, id string) (*dto.BeneficiaryResponse, error) {
	b, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBeneficiaryResponse(b), nil
}

// ensureGroup nil means unassigned and is always valid
func (s *beneficiaryService) ensureGroup(ctx context.Context, groupID *string) error {
	if groupID == nil {
		return nil
	}
	if _, err := s.repo.Group.GetByID(ctx, *groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		s.logger.Error("get group failed", zap.String("group_id", *groupID), zap.Error(err))
		return err
	}
	return nil
}

func defaultGender(g string) string {
	if g == "" {
		return "U"
	}
	return g
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := calendar.ParseDay(strings.TrimSpace(raw))
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &d, nil
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return calendar.FormatDay(*t)
}

func toChildModels(reqs []dto.ChildRequest) ([]model.Child, error) {
	children := make([]model.Child, 0, len(reqs))
	for _, c := range reqs {
		birthDate, err := parseOptionalDate(c.BirthDate)
		if err != nil {
			return nil, err
		}
		children = append(children, model.Child{
			FullName:     strings.TrimSpace(c.FullName),
			Gender:       defaultGender(c.Gender),
			NationalID:   c.NationalID,
			BirthDate:    birthDate,
			IsStudying:   c.IsStudying,
			Observations: c.Observations,
		})
	}
	return children, nil
}

func toBeneficiaryBrief(b *model.Beneficiary) *dto.BeneficiaryBrief {
	if b == nil {
		return nil
	}
	return &dto.BeneficiaryBrief{
		ID:          b.BeneficiaryID,
		FullName:    b.FullName,
		NationalID:  b.NationalID,
		PhoneNumber: b.PhoneNumber,
	}
}

func toBeneficiaryResponse(b *model.Beneficiary) *dto.BeneficiaryResponse {
	return &dto.BeneficiaryResponse{
		ID:             b.BeneficiaryID,
		FullName:       b.FullName,
		NationalID:     b.NationalID,
		BirthDate:      formatOptionalDate(b.BirthDate),
		PlaceOfBirth:   b.PlaceOfBirth,
		Gender:         b.Gender,
		Address:        b.Address,
		Zone:           b.Zone,
		PhoneNumber:    b.PhoneNumber,
		ChronicIllness: b.ChronicIllness,
		PhotoURL:       b.PhotoURL,
		HasChildren:    b.HasChildren,
		Observations:   b.Observations,
		Status:         b.Status,
		Group:          toGroupBrief(b.Group),
		Version:        b.Version,
		CreatedAt:      b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      b.UpdatedAt.Format(time.RFC3339),
	}
}
