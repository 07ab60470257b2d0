package rdb

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Lee_Groups/internal/model"
	"Lee_Groups/internal/repository"
	"Lee_Groups/internal/service"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return translate(r.DB.WithContext(ctx).Omit(clause.Associations).Create(post).Error)
}

func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	if err := r.DB.WithContext(ctx).Preload("Creator").First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// List 按创建时间倒序，索引 (group_id, created_at DESC)
func (r *PostRepository) List(ctx context.Context, f repository.PostFilter, offset, limit int) ([]model.Post, error) {
	q := r.DB.WithContext(ctx).Model(&model.Post{}).Preload("Creator")
	if f.GroupID != 0 {
		q = q.Where("group_id = ?", f.GroupID)
	}
	if f.CreatorID != 0 {
		q = q.Where("creator_id = ?", f.CreatorID)
	}
	var list []model.Post
	err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, translate(err)
}

// Update creator_id 不可修改
func (r *PostRepository) Update(ctx context.Context, post *model.Post) error {
	return translate(r.DB.WithContext(ctx).Model(&model.Post{ID: post.ID}).Updates(map[string]any{
		"group_id": post.GroupID,
		"title":    post.Title,
		"content":  post.Content,
	}).Error)
}

func (r *PostRepository) Delete(ctx context.Context, id uint64) error {
	res := r.DB.WithContext(ctx).Delete(&model.Post{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ service.PostRepository = (*PostRepository)(nil)
