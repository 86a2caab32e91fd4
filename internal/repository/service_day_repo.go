package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/model"
)

// ServiceDayRepository persisted calendar days, keyed by service_date
type ServiceDayRepository interface {
	FindByDate(ctx context.Context, date time.Time) (*model.ServiceDay, error)
	// Upsert inserts or overwrites the row for day.Date
	Upsert(ctx context.Context, day *model.ServiceDay) error
	// UpsertBatch overwrite=false keeps existing rows; returns the affected count
	UpsertBatch(ctx context.Context, days []model.ServiceDay, overwrite bool) (int64, error)
	ListInRange(ctx context.Context, start, end time.Time) ([]model.ServiceDay, error)
}

type serviceDayRepo struct {
	db *gorm.DB
}

// NewServiceDayRepo creates a ServiceDayRepository
func NewServiceDayRepo(db *gorm.DB) ServiceDayRepository {
	return &serviceDayRepo{db: db}
}

var serviceDayConflict = []clause.Column{{Name: "service_date"}}

func (r *serviceDayRepo) FindByDate(ctx context.Context, date time.Time) (*model.ServiceDay, error) {
	var day model.ServiceDay
	err := r.db.WithContext(ctx).
		Preload("Group").
		Where("service_date = ?", date).
		First(&day).Error
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *serviceDayRepo) Upsert(ctx context.Context, day *model.ServiceDay) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: serviceDayConflict,
			DoUpdates: clause.Assignments(map[string]interface{}{
				"group_id":   day.GroupID,
				"is_holiday": day.IsHoliday,
				"note":       day.Note,
				"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).
		Omit("Group").
		Create(day).Error
}

func (r *serviceDayRepo) UpsertBatch(ctx context.Context, days []model.ServiceDay, overwrite bool) (int64, error) {
	if len(days) == 0 {
		return 0, nil
	}
	conflict := clause.OnConflict{Columns: serviceDayConflict, DoNothing: true}
	if overwrite {
		conflict = clause.OnConflict{
			Columns:   serviceDayConflict,
			DoUpdates: clause.AssignmentColumns([]string{"group_id", "is_holiday", "note", "updated_at"}),
		}
	}
	result := r.db.WithContext(ctx).
		Clauses(conflict).
		Omit("Group").
		CreateInBatches(&days, 100)
	return result.RowsAffected, result.Error
}

func (r *serviceDayRepo) ListInRange(ctx context.Context, start, end time.Time) ([]model.ServiceDay, error) {
	var days []model.ServiceDay
	err := r.db.WithContext(ctx).
		Preload("Group").
		Where("service_date BETWEEN ? AND ?", start, end).
		Order("service_date ASC").
		Find(&days).Error
	return days, err
}
