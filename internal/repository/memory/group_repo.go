package memory

import (
	"context"
	"errors"

	"Lee_Groups/internal/model"
	"Lee_Groups/internal/repository"
	"Lee_Groups/internal/service"
)

// ErrForeignKey 引用的用户/小组不存在，对应数据库外键约束失败
var ErrForeignKey = errors.New("foreign key constraint fails")

type GroupRepository struct {
	s *Store
}

func (r *GroupRepository) load(g model.Group) *model.Group {
	g.Creator = r.s.creator(g.CreatorID)
	return &g
}

func (r *GroupRepository) Create(_ context.Context, g *model.Group) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[g.CreatorID]; !ok {
		return ErrForeignKey
	}
	now := r.s.now()
	g.ID = r.s.id()
	g.CreatedAt, g.UpdatedAt = now, now
	stored := *g
	stored.Creator = model.User{}
	r.s.groups[g.ID] = stored
	return nil
}

func (r *GroupRepository) FindByID(_ context.Context, id uint64) (*model.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	g, ok := r.s.groups[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.load(g), nil
}

func (r *GroupRepository) List(_ context.Context, offset, limit int) ([]model.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]model.Group, 0, len(r.s.groups))
	for _, g := range r.s.groups {
		list = append(list, *r.load(g))
	}
	sortGroups(list)
	return window(list, offset, limit), nil
}

func (r *GroupRepository) Update(_ context.Context, g *model.Group) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.groups[g.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Name, cur.Description = g.Name, g.Description
	cur.UpdatedAt = r.s.now()
	r.s.groups[g.ID] = cur
	return nil
}

func (r *GroupRepository) Delete(_ context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.groups[id]; !ok {
		return repository.ErrNotFound
	}
	for pid, p := range r.s.posts {
		if p.GroupID == id {
			delete(r.s.posts, pid)
		}
	}
	delete(r.s.groups, id)
	return nil
}

var _ service.GroupRepository = (*GroupRepository)(nil)
