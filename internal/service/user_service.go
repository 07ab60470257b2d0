package service

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"Lee_Groups/internal/apperr"
	"Lee_Groups/internal/event"
	"Lee_Groups/internal/model"
	"Lee_Groups/internal/pkg"
	"Lee_Groups/internal/policy"
	"Lee_Groups/internal/repository"
)

type UserService struct {
	repo     UserRepository
	sessions SessionStore
	notifier
}

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
}

// UpdateUserInput nil 表示请求里没有该字段
type UpdateUserInput struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
}

type ChangePasswordInput struct {
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}

func NewUserService(repo UserRepository, sessions SessionStore, publisher event.Publisher, logger *slog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		sessions: sessions,
		notifier: newNotifier(publisher, logger),
	}
}

// userError 把存储层错误翻译成业务错误
func userError(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return apperr.Validation("email", apperr.CodeDuplicateEmail)
	case errors.Is(err, repository.ErrDuplicateUsername):
		return apperr.Validation("username", apperr.CodeDuplicateUsername)
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound(apperr.CodeUserNotFound)
	default:
		return errors.Wrap(err, op)
	}
}

// Register 注册，两次密码不一致优先于其它校验
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if err := policy.Authorize(policy.UserCreate, policy.Anonymous(), 0); err != nil {
		return nil, err
	}
	if in.Password != in.ConfirmPassword {
		return nil, apperr.Validation("password", apperr.CodePasswordMismatch)
	}

	in.Username = normalize(in.Username)
	in.Email = normalize(in.Email)
	if err := validateRegister(in); err != nil {
		return nil, err
	}
	if err := checkPassword(in.Password, in.ConfirmPassword, in.Username, in.Email, in.FirstName, in.LastName); err != nil {
		return nil, err
	}

	hash, err := pkg.HashPassword(in.Password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	user := &model.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  hash,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      model.RoleUser,
	}
	if err = s.repo.Create(ctx, user); err != nil {
		return nil, userError(err, "create user")
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	s.publish(ctx, event.New(event.UserRegistered, user.ID, map[string]any{
		"username": user.Username,
		"email":    user.Email,
	}))
	return user, nil
}

// GetSelf 只返回当前登录用户自己的资料
func (s *UserService) GetSelf(ctx context.Context, id policy.Identity) (*model.User, error) {
	if err := policy.Authorize(policy.UserSelf, id, id.UserID); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, id.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		// 令牌有效但账号已删除
		return nil, apperr.Authentication(apperr.CodeInvalidToken)
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id policy.Identity, userID uint64) (*model.User, error) {
	if err := policy.Authorize(policy.UserRead, id, userID); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, userError(err, "find user")
	}
	return user, nil
}

// Update partial=false 时 username 和 email 必填
func (s *UserService) Update(ctx context.Context, id policy.Identity, userID uint64, in UpdateUserInput, partial bool) (*model.User, error) {
	if err := policy.Authorize(policy.UserUpdate, id, userID); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, userError(err, "find user")
	}

	if !partial {
		var f fieldErrors
		if in.Username == nil {
			f.add("username", apperr.CodeRequired)
		}
		if in.Email == nil {
			f.add("email", apperr.CodeRequired)
		}
		if err = f.err(); err != nil {
			return nil, err
		}
	}
	if in.Username != nil {
		user.Username = normalize(*in.Username)
	}
	if in.Email != nil {
		user.Email = normalize(*in.Email)
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if err = validateUser(user); err != nil {
		return nil, err
	}

	if err = s.repo.Update(ctx, user); err != nil {
		return nil, userError(err, "update user")
	}
	return s.Get(ctx, id, userID)
}

// Delete 级联删除小组和帖子，同时清掉登录态
func (s *UserService) Delete(ctx context.Context, id policy.Identity, userID uint64) error {
	if err := policy.Authorize(policy.UserDelete, id, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		return userError(err, "delete user")
	}
	if err := s.sessions.Delete(ctx, userID); err != nil {
		s.logger.WarnContext(ctx, "drop session failed", "user_id", userID, "err", err)
	}
	s.publish(ctx, event.New(event.UserDeleted, userID, nil))
	return nil
}

// ChangePassword 修改成功后所有登录态失效
func (s *UserService) ChangePassword(ctx context.Context, id policy.Identity, in ChangePasswordInput) error {
	if err := policy.Authorize(policy.UserSelf, id, id.UserID); err != nil {
		return err
	}
	user, err := s.repo.FindByID(ctx, id.UserID)
	if err != nil {
		return userError(err, "find user")
	}
	if !pkg.ComparePassword(user.Password, in.OldPassword) {
		return apperr.Validation("old_password", apperr.CodeInvalidPassword)
	}
	if err = checkPassword(in.NewPassword, in.ConfirmPassword, user.Username, user.Email, user.FirstName, user.LastName); err != nil {
		return err
	}

	hash, err := pkg.HashPassword(in.NewPassword)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	if err = s.repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return userError(err, "update password")
	}
	return errors.Wrap(s.sessions.Delete(ctx, user.ID), "drop session")
}
