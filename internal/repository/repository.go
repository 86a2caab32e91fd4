package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregate entry point for every repository
type Repository struct {
	db *gorm.DB

	Group       GroupRepository
	Beneficiary BeneficiaryRepository
	Attendance  AttendanceRepository
	ServiceDay  ServiceDayRepository
	Holiday     HolidayRepository
}

// NewRepository builds the aggregate over db
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:          db,
		Group:       NewGroupRepo(db),
		Beneficiary: NewBeneficiaryRepo(db),
		Attendance:  NewAttendanceRepo(db),
		ServiceDay:  NewServiceDayRepo(db),
		Holiday:     NewHolidayRepo(db),
	}
}

// BeginTx opens a transaction. Returns a nil tx when the aggregate has no
// database, which is the case for mock-backed aggregates in unit tests.
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx aggregate whose repositories run inside tx. A nil tx returns r.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}
