package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/model"
)

// AttendanceRepository attendance data access.
// Date ranges are inclusive day keys.
type AttendanceRepository interface {
	Create(ctx context.Context, a *model.Attendance) error
	// BatchCreate skips rows that collide on (beneficiary, date) and returns the inserted count
	BatchCreate(ctx context.Context, rows []model.Attendance) (int64, error)
	ListByGroupAndDateRange(ctx context.Context, groupID string, start, end time.Time) ([]model.Attendance, error)
	ListRecentByBeneficiary(ctx context.Context, beneficiaryID string, limit int) ([]model.Attendance, error)
	ListRecent(ctx context.Context, limit int) ([]model.Attendance, error)
	Totals(ctx context.Context) (*model.AttendanceTotals, error)
	TotalsByGroup(ctx context.Context) ([]model.GroupAttendanceTotals, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo creates an AttendanceRepository
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, a *model.Attendance) error {
	return r.db.WithContext(ctx).Omit("Beneficiary").Create(a).Error
}

func (r *attendanceRepo) BatchCreate(ctx context.Context, rows []model.Attendance) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "beneficiary_id"}, {Name: "attendance_date"}},
			DoNothing: true,
		}).
		Omit("Beneficiary").
		Create(&rows)
	return result.RowsAffected, result.Error
}

func (r *attendanceRepo) ListByGroupAndDateRange(ctx context.Context, groupID string, start, end time.Time) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.WithContext(ctx).
		Select("attendances.*").
		Joins("JOIN beneficiaries ON beneficiaries.beneficiary_id = attendances.beneficiary_id").
		Preload("Beneficiary").
		Where("beneficiaries.group_id = ?", groupID).
		Where("attendances.attendance_date BETWEEN ? AND ?", start, end).
		Order("beneficiaries.full_name ASC").
		Find(&list).Error
	return list, err
}

func (r *attendanceRepo) ListRecentByBeneficiary(ctx context.Context, beneficiaryID string, limit int) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.WithContext(ctx).
		Where("beneficiary_id = ?", beneficiaryID).
		Order("attendance_date DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *attendanceRepo) ListRecent(ctx context.Context, limit int) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Beneficiary").Preload("Beneficiary.Group").
		Order("attendance_date DESC, created_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

const totalsSelect = `COUNT(*) FILTER (WHERE attendances.received_food) AS food_count,
COUNT(*) FILTER (WHERE attendances.received_medical) AS medical_count,
COALESCE(SUM(attendances.clothes_quantity), 0) AS clothes_items`

func (r *attendanceRepo) Totals(ctx context.Context) (*model.AttendanceTotals, error) {
	var totals model.AttendanceTotals
	err := r.db.WithContext(ctx).
		Model(&model.Attendance{}).
		Select(totalsSelect).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

func (r *attendanceRepo) TotalsByGroup(ctx context.Context) ([]model.GroupAttendanceTotals, error) {
	var list []model.GroupAttendanceTotals
	err := r.db.WithContext(ctx).
		Table("groups").
		Select("groups.group_id, groups.name, " + totalsSelect).
		Joins("LEFT JOIN beneficiaries ON beneficiaries.group_id = groups.group_id").
		Joins("LEFT JOIN attendances ON attendances.beneficiary_id = beneficiaries.beneficiary_id").
		Group("groups.group_id, groups.name").
		Order("groups.name ASC").
		Scan(&list).Error
	return list, err
}
