package service

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"Lee_Groups/internal/apperr"
	"Lee_Groups/internal/event"
	"Lee_Groups/internal/model"
	"Lee_Groups/internal/policy"
	"Lee_Groups/internal/repository"
)

type PostService struct {
	repo   PostRepository
	groups GroupRepository
	notifier
}

// PostInput creator 不从请求里取
type PostInput struct {
	GroupID *uint64
	Title   *string
	Content *string
}

func NewPostService(repo PostRepository, groups GroupRepository, publisher event.Publisher, logger *slog.Logger) *PostService {
	return &PostService{
		repo:     repo,
		groups:   groups,
		notifier: newNotifier(publisher, logger),
	}
}

func postError(err error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(apperr.CodePostNotFound)
	}
	return errors.Wrap(err, op)
}

func (in PostInput) apply(p *model.Post) {
	if in.GroupID != nil {
		p.GroupID = *in.GroupID
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
}

// targetGroup 校验目标小组存在且属于当前用户
func (s *PostService) targetGroup(ctx context.Context, id policy.Identity, groupID uint64) error {
	g, err := s.groups.FindByID(ctx, groupID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.Validation("group", apperr.CodeDoesNotExist)
	}
	if err != nil {
		return errors.Wrap(err, "find group")
	}
	return policy.CanPostInto(id, g)
}

// Create 只能发到自己创建的小组里
func (s *PostService) Create(ctx context.Context, id policy.Identity, in PostInput) (*model.Post, error) {
	if err := policy.Authorize(policy.PostCreate, id, 0); err != nil {
		return nil, err
	}
	post := &model.Post{CreatorID: id.UserID}
	in.apply(post)
	if err := validatePost(post); err != nil {
		return nil, err
	}
	if err := s.targetGroup(ctx, id, post.GroupID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, errors.Wrap(err, "create post")
	}
	s.publish(ctx, event.New(event.PostCreated, post.ID, map[string]any{"group_id": post.GroupID, "creator_id": post.CreatorID}))
	return s.find(ctx, post.ID)
}

func (s *PostService) find(ctx context.Context, postID uint64) (*model.Post, error) {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return nil, postError(err, "find post")
	}
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id policy.Identity, postID uint64) (*model.Post, error) {
	if err := policy.Authorize(policy.PostRead, id, 0); err != nil {
		return nil, err
	}
	return s.find(ctx, postID)
}

// List 按时间倒序，可按小组/作者过滤
func (s *PostService) List(ctx context.Context, id policy.Identity, f repository.PostFilter, page, size int) ([]model.Post, error) {
	if err := policy.Authorize(policy.PostList, id, 0); err != nil {
		return nil, err
	}
	offset, limit := repository.Page(page, size)
	list, err := s.repo.List(ctx, f, offset, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list posts")
	}
	return list, nil
}

// Update 仅作者本人；换小组时重新校验小组归属
func (s *PostService) Update(ctx context.Context, id policy.Identity, postID uint64, in PostInput, partial bool) (*model.Post, error) {
	if !id.Authenticated() {
		return nil, apperr.Authentication(apperr.CodeNotAuthenticated)
	}
	post, err := s.find(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err = policy.Authorize(policy.PostUpdate, id, post.CreatorID); err != nil {
		return nil, err
	}
	if !partial {
		var f fieldErrors
		if in.GroupID == nil {
			f.add("group", apperr.CodeRequired)
		}
		if in.Content == nil {
			f.add("content", apperr.CodeRequired)
		}
		if err = f.err(); err != nil {
			return nil, err
		}
	}

	prevGroup := post.GroupID
	in.apply(post)
	if err = validatePost(post); err != nil {
		return nil, err
	}
	if post.GroupID != prevGroup {
		if err = s.targetGroup(ctx, id, post.GroupID); err != nil {
			return nil, err
		}
	}

	if err = s.repo.Update(ctx, post); err != nil {
		return nil, postError(err, "update post")
	}
	return s.find(ctx, postID)
}

func (s *PostService) Delete(ctx context.Context, id policy.Identity, postID uint64) error {
	if !id.Authenticated() {
		return apperr.Authentication(apperr.CodeNotAuthenticated)
	}
	post, err := s.find(ctx, postID)
	if err != nil {
		return err
	}
	if err = policy.Authorize(policy.PostDelete, id, post.CreatorID); err != nil {
		return err
	}
	if err = s.repo.Delete(ctx, postID); err != nil {
		return postError(err, "delete post")
	}
	s.publish(ctx, event.New(event.PostDeleted, postID, map[string]any{"group_id": post.GroupID}))
	return nil
}
