package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/model"
	pkgerrors "github.com/suplidoraindustrial6s-lab/caritas-app/pkg/errors"
)

// BeneficiaryFilter list filters. Zero values mean "any".
type BeneficiaryFilter struct {
	GroupID    string
	Unassigned bool
	Status     string
	Search     string // matches full name or national id
	Offset     int
	Limit      int
}

// BeneficiaryRepository beneficiary data access
type BeneficiaryRepository interface {
	Create(ctx context.Context, b *model.Beneficiary) error
	GetByID(ctx context.Context, id string) (*model.Beneficiary, error)
	GetByNationalID(ctx context.Context, nationalID string) (*model.Beneficiary, error)
	List(ctx context.Context, filter BeneficiaryFilter) ([]model.Beneficiary, int64, error)
	// ListActiveByGroup roster of a group ordered by name
	ListActiveByGroup(ctx context.Context, groupID string) ([]model.Beneficiary, error)
	Update(ctx context.Context, b *model.Beneficiary) error
	UpdateGroup(ctx context.Context, id string, groupID *string) error
	UpdateStatus(ctx context.Context, id, status string) error
	ReplaceChildren(ctx context.Context, id string, children []model.Child) error
	UpsertByNationalID(ctx context.Context, b *model.Beneficiary) error
	Count(ctx context.Context) (int64, error)
	CountByZone(ctx context.Context) ([]model.ZoneCount, error)
}

type beneficiaryRepo struct {
	db *gorm.DB
}

// NewBeneficiaryRepo creates a BeneficiaryRepository
func NewBeneficiaryRepo(db *gorm.DB) BeneficiaryRepository {
	return &beneficiaryRepo{db: db}
}

func (r *beneficiaryRepo) Create(ctx context.Context, b *model.Beneficiary) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *beneficiaryRepo) GetByID(ctx context.Context, id string) (*model.Beneficiary, error) {
	var b model.Beneficiary
	err := r.db.WithContext(ctx).
		Preload("Group").
		Preload("Children", func(db *gorm.DB) *gorm.DB { return db.Order("full_name ASC") }).
		Where("beneficiary_id = ?", id).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *beneficiaryRepo) GetByNationalID(ctx context.Context, nationalID string) (*model.Beneficiary, error) {
	var b model.Beneficiary
	err := r.db.WithContext(ctx).
		Where("national_id = ?", nationalID).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *beneficiaryRepo) List(ctx context.Context, filter BeneficiaryFilter) ([]model.Beneficiary, int64, error) {
	var list []model.Beneficiary
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Beneficiary{})
	switch {
	case filter.Unassigned:
		db = db.Where("group_id IS NULL")
	case filter.GroupID != "":
		db = db.Where("group_id = ?", filter.GroupID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + s + "%"
		db = db.Where("full_name ILIKE ? OR national_id ILIKE ?", like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		db = db.Offset(filter.Offset).Limit(filter.Limit)
	}
	if err := db.Preload("Group").
		Order("full_name ASC").
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *beneficiaryRepo) ListActiveByGroup(ctx context.Context, groupID string) ([]model.Beneficiary, error) {
	var list []model.Beneficiary
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND status = ?", groupID, model.StatusActive).
		Order("full_name ASC").
		Find(&list).Error
	return list, err
}

func (r *beneficiaryRepo) Update(ctx context.Context, b *model.Beneficiary) error {
	oldVersion := b.Version
	result := r.db.WithContext(ctx).
		Model(b).
		Where("beneficiary_id = ? AND version = ?", b.BeneficiaryID, oldVersion).
		Updates(map[string]interface{}{
			"full_name":       b.FullName,
			"national_id":     b.NationalID,
			"birth_date":      b.BirthDate,
			"place_of_birth":  b.PlaceOfBirth,
			"gender":          b.Gender,
			"address":         b.Address,
			"zone":            b.Zone,
			"phone_number":    b.PhoneNumber,
			"chronic_illness": b.ChronicIllness,
			"photo_url":       b.PhotoURL,
			"has_children":    b.HasChildren,
			"observations":    b.Observations,
			"status":          b.Status,
			"group_id":        b.GroupID,
			"version":         oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	b.Version = oldVersion + 1
	return nil
}

func (r *beneficiaryRepo) UpdateGroup(ctx context.Context, id string, groupID *string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"group_id": groupID})
}

func (r *beneficiaryRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"status": status})
}

func (r *beneficiaryRepo) updateColumns(ctx context.Context, id string, cols map[string]interface{}) error {
	cols["version"] = gorm.Expr("version + 1")
	result := r.db.WithContext(ctx).
		Model(&model.Beneficiary{}).
		Where("beneficiary_id = ?", id).
		Updates(cols)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *beneficiaryRepo) ReplaceChildren(ctx context.Context, id string, children []model.Child) error {
	if err := r.db.WithContext(ctx).
		Where("beneficiary_id = ?", id).
		Delete(&model.Child{}).Error; err != nil {
		return err
	}
	if len(children) == 0 {
		return nil
	}
	for i := range children {
		children[i].BeneficiaryID = id
	}
	return r.db.WithContext(ctx).Create(&children).Error
}

func (r *beneficiaryRepo) UpsertByNationalID(ctx context.Context, b *model.Beneficiary) error {
	// empty fields on an existing row are left untouched
	updates := map[string]interface{}{
		"full_name":  b.FullName,
		"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		"version":    gorm.Expr("beneficiaries.version + 1"),
	}
	if b.GroupID != nil {
		updates["group_id"] = b.GroupID
	}
	if b.Zone != "" {
		updates["zone"] = b.Zone
	}
	if b.Address != "" {
		updates["address"] = b.Address
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "national_id"}},
			DoUpdates: clause.Assignments(updates),
		}).
		Omit("Group", "Children", "Attendances").
		Create(b).Error
}

func (r *beneficiaryRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Beneficiary{}).Count(&total).Error
	return total, err
}

func (r *beneficiaryRepo) CountByZone(ctx context.Context) ([]model.ZoneCount, error) {
	var zones []model.ZoneCount
	err := r.db.WithContext(ctx).
		Model(&model.Beneficiary{}).
		Select("COALESCE(NULLIF(TRIM(zone), ''), ?) AS zone, COUNT(*) AS count", model.ZoneUnknown).
		Group("1").
		Order("count DESC").
		Scan(&zones).Error
	return zones, err
}
