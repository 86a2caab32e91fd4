package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/model"
)

// HolidayRepository holiday data access
type HolidayRepository interface {
	Create(ctx context.Context, h *model.Holiday) error
	// Upsert replaces name and source of an existing date
	Upsert(ctx context.Context, h *model.Holiday) error
	GetByID(ctx context.Context, id string) (*model.Holiday, error)
	Delete(ctx context.Context, id string) error
	ListInRange(ctx context.Context, start, end time.Time) ([]model.Holiday, error)
}

type holidayRepo struct {
	db *gorm.DB
}

// NewHolidayRepo creates a HolidayRepository
func NewHolidayRepo(db *gorm.DB) HolidayRepository {
	return &holidayRepo{db: db}
}

func (r *holidayRepo) Create(ctx context.Context, h *model.Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *holidayRepo) Upsert(ctx context.Context, h *model.Holiday) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "holiday_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "source", "updated_at"}),
		}).
		Create(h).Error
}

func (r *holidayRepo) GetByID(ctx context.Context, id string) (*model.Holiday, error) {
	var h model.Holiday
	err := r.db.WithContext(ctx).
		Where("holiday_id = ?", id).
		First(&h).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *holidayRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("holiday_id = ?", id).
		Delete(&model.Holiday{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *holidayRepo) ListInRange(ctx context.Context, start, end time.Time) ([]model.Holiday, error) {
	var list []model.Holiday
	err := r.db.WithContext(ctx).
		Where("holiday_date BETWEEN ? AND ?", start, end).
		Order("holiday_date ASC").
		Find(&list).Error
	return list, err
}
