package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/model"
)

// GroupRepository group data access
type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, id string) (*model.Group, error)
	GetByName(ctx context.Context, name string) (*model.Group, error)
	List(ctx context.Context) ([]model.Group, error)
	ListWithCounts(ctx context.Context) ([]model.GroupWithCount, error)
	// UpsertByName returns the existing group when the name is taken
	UpsertByName(ctx context.Context, group *model.Group) (*model.Group, error)
}

type groupRepo struct {
	db *gorm.DB
}

// NewGroupRepo creates a GroupRepository
func NewGroupRepo(db *gorm.DB) GroupRepository {
	return &groupRepo{db: db}
}

func (r *groupRepo) Create(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepo) GetByID(ctx context.Context, id string) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).
		Where("group_id = ?", id).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepo) GetByName(ctx context.Context, name string) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepo) List(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&groups).Error
	return groups, err
}

func (r *groupRepo) ListWithCounts(ctx context.Context) ([]model.GroupWithCount, error) {
	var groups []model.GroupWithCount
	err := r.db.WithContext(ctx).
		Model(&model.Group{}).
		Select("groups.*, COUNT(beneficiaries.beneficiary_id) AS beneficiary_count").
		Joins("LEFT JOIN beneficiaries ON beneficiaries.group_id = groups.group_id").
		Group("groups.group_id").
		Order("groups.name ASC").
		Scan(&groups).Error
	return groups, err
}

func (r *groupRepo) UpsertByName(ctx context.Context, group *model.Group) (*model.Group, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(group).Error
	if err != nil {
		return nil, err
	}
	return r.GetByName(ctx, group.Name)
}
