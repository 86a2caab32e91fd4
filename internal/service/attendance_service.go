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
)

// ── attendance errors ──

var (
	ErrAttendanceDuplicate = errors.New("el beneficiario ya tiene un registro para esta fecha")
)

// AttendanceService manual attendance registration
type AttendanceService interface {
	Register(ctx context.Context, req *dto.RegisterAttendanceRequest) (*dto.AttendanceResponse, error)
	ListByGroupAndDate(ctx context.Context, req *dto.ListAttendanceRequest) ([]dto.AttendanceResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewAttendanceService creates an AttendanceService. loc resolves "today".
func NewAttendanceService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, loc: loc, logger: logger}
}

// ────────────────────── Register ──────────────────────

func (s *attendanceService) Register(ctx context.Context, req *dto.RegisterAttendanceRequest) (*dto.AttendanceResponse, error) {
	date, err := parseDateOrToday(req.Date, s.loc)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.Beneficiary.GetByID(ctx, req.BeneficiaryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBeneficiaryNotFound
		}
		s.logger.Error("get beneficiary failed", zap.String("beneficiary_id", req.BeneficiaryID), zap.Error(err))
		return nil, err
	}

	a := &model.Attendance{
		BeneficiaryID:     b.BeneficiaryID,
		Date:              date,
		Status:            model.AttendancePresent,
		ReceivedFood:      req.ReceivedFood,
		FoodQuantity:      req.FoodQuantity,
		ReceivedClothes:   req.ReceivedClothes,
		ClothesQuantity:   req.ClothesQuantity,
		ReceivedMedical:   req.ReceivedMedical,
		MedicinesReceived: strings.TrimSpace(req.MedicinesReceived),
		Signature:         strings.TrimSpace(req.Signature),
	}

	if err := s.repo.Attendance.Create(ctx, a); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAttendanceDuplicate
		}
		s.logger.Error("register attendance failed",
			zap.String("beneficiary_id", b.BeneficiaryID),
			zap.String("date", calendar.FormatDay(date)),
			zap.Error(err),
		)
		return nil, err
	}

	a.Beneficiary = b
	return toAttendanceResponse(a), nil
}

// ────────────────────── ListByGroupAndDate ──────────────────────

func (s *attendanceService) ListByGroupAndDate(ctx context.Context, req *dto.ListAttendanceRequest) ([]dto.AttendanceResponse, error) {
	date, err := parseDateOrToday(req.Date, s.loc)
	if err != nil {
		return nil, err
	}

	start, end := calendar.DayBounds(date)
	list, err := s.repo.Attendance.ListByGroupAndDateRange(ctx, req.GroupID, start, end)
	if err != nil {
		s.logger.Error("list group attendance failed",
			zap.String("group_id", req.GroupID),
			zap.String("date", calendar.FormatDay(date)),
			zap.Error(err),
		)
		return nil, err
	}

	result := make([]dto.AttendanceResponse, 0, len(list))
	for i := range list {
		result = append(result, *toAttendanceResponse(&list[i]))
	}
	return result, nil
}

func toAttendanceResponse(a *model.Attendance) *dto.AttendanceResponse {
	resp := &dto.AttendanceResponse{
		ID:                a.AttendanceID,
		BeneficiaryID:     a.BeneficiaryID,
		Date:              calendar.FormatDay(a.Date),
		Status:            a.Status,
		ReceivedFood:      a.ReceivedFood,
		FoodQuantity:      a.FoodQuantity,
		ReceivedClothes:   a.ReceivedClothes,
		ClothesQuantity:   a.ClothesQuantity,
		ReceivedMedical:   a.ReceivedMedical,
		MedicinesReceived: a.MedicinesReceived,
		Signature:         a.Signature,
		CreatedAt:         a.CreatedAt.Format(time.RFC3339),
	}
	if a.Beneficiary != nil {
		resp.Beneficiary = toBeneficiaryBrief(a.Beneficiary)
		resp.Group = toGroupBrief(a.Beneficiary.Group)
	}
	return resp
}
