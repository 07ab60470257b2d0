package service

import (
	"context"
	"time"

	"Lee_Groups/internal/model"
	"Lee_Groups/internal/repository"
)

// UserRepository 找不到返回 repository.ErrNotFound，
// 用户名/邮箱冲突返回 repository.ErrDuplicateUsername / ErrDuplicateEmail
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint64) (*model.User, error)
	FindByLogin(ctx context.Context, login string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id uint64, hash string) error
	Delete(ctx context.Context, id uint64) error
}

// GroupRepository 读操作需要带上 Creator
type GroupRepository interface {
	Create(ctx context.Context, g *model.Group) error
	FindByID(ctx context.Context, id uint64) (*model.Group, error)
	List(ctx context.Context, offset, limit int) ([]model.Group, error)
	Update(ctx context.Context, g *model.Group) error
	Delete(ctx context.Context, id uint64) error
}

// PostRepository 读操作需要带上 Creator
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint64) (*model.Post, error)
	List(ctx context.Context, f repository.PostFilter, offset, limit int) ([]model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id uint64) error
}

// SessionStore 登录态：每个用户只保留最近一次登录的 access token 和 refresh jti
type SessionStore interface {
	Save(ctx context.Context, userID uint64, accessToken string, accessTTL time.Duration, refreshID string, refreshTTL time.Duration) error
	SetAccessToken(ctx context.Context, userID uint64, accessToken string, ttl time.Duration) error
	AccessToken(ctx context.Context, userID uint64) (string, error)
	RefreshID(ctx context.Context, userID uint64) (string, error)
	Delete(ctx context.Context, userID uint64) error
}
