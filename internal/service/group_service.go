package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"Lee_Groups/internal/apperr"
	"Lee_Groups/internal/event"
	"Lee_Groups/internal/model"
	"Lee_Groups/internal/policy"
	"Lee_Groups/internal/repository"
)

type GroupService struct {
	repo GroupRepository
	notifier
}

// GroupInput 不包含 creator，创建者只取当前身份
type GroupInput struct {
	Name        *string
	Description *string
}

func NewGroupService(repo GroupRepository, publisher event.Publisher, logger *slog.Logger) *GroupService {
	return &GroupService{
		repo:     repo,
		notifier: newNotifier(publisher, logger),
	}
}

func groupError(err error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(apperr.CodeGroupNotFound)
	}
	return errors.Wrap(err, op)
}

func (in GroupInput) apply(g *model.Group) {
	if in.Name != nil {
		g.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		g.Description = *in.Description
	}
}

func (s *GroupService) Create(ctx context.Context, id policy.Identity, in GroupInput) (*model.Group, error) {
	if err := policy.Authorize(policy.GroupCreate, id, 0); err != nil {
		return nil, err
	}
	g := &model.Group{CreatorID: id.UserID}
	in.apply(g)
	if err := validateGroup(g); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, errors.Wrap(err, "create group")
	}

	s.publish(ctx, event.New(event.GroupCreated, g.ID, map[string]any{"creator_id": g.CreatorID, "name": g.Name}))
	return s.find(ctx, g.ID)
}

func (s *GroupService) find(ctx context.Context, groupID uint64) (*model.Group, error) {
	g, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		return nil, groupError(err, "find group")
	}
	return g, nil
}

// Get 匿名可读
func (s *GroupService) Get(ctx context.Context, id policy.Identity, groupID uint64) (*model.Group, error) {
	if err := policy.Authorize(policy.GroupRead, id, 0); err != nil {
		return nil, err
	}
	return s.find(ctx, groupID)
}

func (s *GroupService) List(ctx context.Context, id policy.Identity, page, size int) ([]model.Group, error) {
	if err := policy.Authorize(policy.GroupList, id, 0); err != nil {
		return nil, err
	}
	offset, limit := repository.Page(page, size)
	list, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list groups")
	}
	return list, nil
}

// Update 只有创建者能改，creator 不可变
func (s *GroupService) Update(ctx context.Context, id policy.Identity, groupID uint64, in GroupInput, partial bool) (*model.Group, error) {
	if !id.Authenticated() {
		return nil, apperr.Authentication(apperr.CodeNotAuthenticated)
	}
	g, err := s.find(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err = policy.Authorize(policy.GroupUpdate, id, g.CreatorID); err != nil {
		return nil, err
	}
	if !partial && in.Name == nil {
		return nil, apperr.Validation("name", apperr.CodeRequired)
	}
	in.apply(g)
	if err = validateGroup(g); err != nil {
		return nil, err
	}
	if err = s.repo.Update(ctx, g); err != nil {
		return nil, groupError(err, "update group")
	}
	return s.find(ctx, groupID)
}

// Delete 组内帖子一并删除
func (s *GroupService) Delete(ctx context.Context, id policy.Identity, groupID uint64) error {
	if !id.Authenticated() {
		return apperr.Authentication(apperr.CodeNotAuthenticated)
	}
	g, err := s.find(ctx, groupID)
	if err != nil {
		return err
	}
	if err = policy.Authorize(policy.GroupDelete, id, g.CreatorID); err != nil {
		return err
	}
	if err = s.repo.Delete(ctx, groupID); err != nil {
		return groupError(err, "delete group")
	}
	s.publish(ctx, event.New(event.GroupDeleted, groupID, map[string]any{"creator_id": g.CreatorID}))
	return nil
}
