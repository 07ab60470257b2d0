package memory

import (
	"context"

	"Lee_Groups/internal/model"
	"Lee_Groups/internal/repository"
	"Lee_Groups/internal/service"
)

type PostRepository struct {
	s *Store
}

func (r *PostRepository) load(p model.Post) *model.Post {
	p.Creator = r.s.creator(p.CreatorID)
	return &p
}

func (r *PostRepository) Create(_ context.Context, post *model.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[post.CreatorID]; !ok {
		return ErrForeignKey
	}
	if _, ok := r.s.groups[post.GroupID]; !ok {
		return ErrForeignKey
	}
	now := r.s.now()
	post.ID = r.s.id()
	post.CreatedAt, post.UpdatedAt = now, now
	stored := *post
	stored.Creator, stored.Group = model.User{}, model.Group{}
	r.s.posts[post.ID] = stored
	return nil
}

func (r *PostRepository) FindByID(_ context.Context, id uint64) (*model.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.load(p), nil
}

func (r *PostRepository) List(_ context.Context, f repository.PostFilter, offset, limit int) ([]model.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]model.Post, 0)
	for _, p := range r.s.posts {
		if f.GroupID != 0 && p.GroupID != f.GroupID {
			continue
		}
		if f.CreatorID != 0 && p.CreatorID != f.CreatorID {
			continue
		}
		list = append(list, *r.load(p))
	}
	sortPosts(list)
	return window(list, offset, limit), nil
}

func (r *PostRepository) Update(_ context.Context, post *model.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.posts[post.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if _, ok = r.s.groups[post.GroupID]; !ok {
		return ErrForeignKey
	}
	cur.GroupID, cur.Title, cur.Content = post.GroupID, post.Title, post.Content
	cur.UpdatedAt = r.s.now()
	r.s.posts[post.ID] = cur
	return nil
}

func (r *PostRepository) Delete(_ context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.posts, id)
	return nil
}

var _ service.PostRepository = (*PostRepository)(nil)
