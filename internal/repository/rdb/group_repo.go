package rdb

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Lee_Groups/internal/model"
	"Lee_Groups/internal/service"
)

type GroupRepository struct {
	DB *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{DB: db}
}

func (r *GroupRepository) Create(ctx context.Context, g *model.Group) error {
	return translate(r.DB.WithContext(ctx).Omit(clause.Associations).Create(g).Error)
}

// FindByID 同时加载创建者信息
func (r *GroupRepository) FindByID(ctx context.Context, id uint64) (*model.Group, error) {
	var g model.Group
	if err := r.DB.WithContext(ctx).Preload("Creator").First(&g, id).Error; err != nil {
		return nil, translate(err)
	}
	return &g, nil
}

func (r *GroupRepository) List(ctx context.Context, offset, limit int) ([]model.Group, error) {
	var list []model.Group
	err := r.DB.WithContext(ctx).
		Preload("Creator").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, translate(err)
}

// Update creator_id 不可修改，不在更新列里
func (r *GroupRepository) Update(ctx context.Context, g *model.Group) error {
	return translate(r.DB.WithContext(ctx).Model(&model.Group{ID: g.ID}).Updates(map[string]any{
		"name":        g.Name,
		"description": g.Description,
	}).Error)
}

// Delete 小组和组内帖子一起删除
func (r *GroupRepository) Delete(ctx context.Context, id uint64) error {
	return translate(r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&model.Post{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Group{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}

var _ service.GroupRepository = (*GroupRepository)(nil)
