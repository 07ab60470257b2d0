package rdb

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Lee_Groups/internal/model"
	"Lee_Groups/internal/service"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Create 唯一性由 uk_users_username / uk_users_email 保证
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return translate(r.DB.WithContext(ctx).Omit(clause.Associations).Create(user).Error)
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByLogin 用户名或邮箱登录
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).
		Where("username = ? OR email = ?", login, login).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Update 只更新资料字段，密码走 UpdatePassword
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	return translate(r.DB.WithContext(ctx).Model(&model.User{ID: user.ID}).Updates(map[string]any{
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	}).Error)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	return translate(r.DB.WithContext(ctx).Model(&model.User{ID: id}).Update("password", hash).Error)
}

// Delete 在一个事务里级联删除：本人发的帖子、本人小组下的帖子、本人的小组、用户
func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	return translate(r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&model.Group{}).Select("id").Where("creator_id = ?", id)
		if err := tx.Where("creator_id = ? OR group_id IN (?)", id, owned).Delete(&model.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("creator_id = ?", id).Delete(&model.Group{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}

var _ service.UserRepository = (*UserRepository)(nil)
