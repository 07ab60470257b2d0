package memory

import (
	"context"

	"Lee_Groups/internal/model"
	"Lee_Groups/internal/repository"
	"Lee_Groups/internal/service"
)

type UserRepository struct {
	s *Store
}

// conflict 调用方需持有锁，skipID 为更新时的本人
// 先查全部用户名再查邮箱，两者都冲突时固定报用户名
func (r *UserRepository) conflict(u *model.User, skipID uint64) error {
	var emailTaken bool
	for id, other := range r.s.users {
		if id == skipID {
			continue
		}
		if other.Username == u.Username {
			return repository.ErrDuplicateUsername
		}
		if other.Email == u.Email {
			emailTaken = true
		}
	}
	if emailTaken {
		return repository.ErrDuplicateEmail
	}
	return nil
}

func (r *UserRepository) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.conflict(user, 0); err != nil {
		return err
	}
	now := r.s.now()
	user.ID = r.s.id()
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id uint64) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindByLogin(_ context.Context, login string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == login || u.Email == login {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) Update(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := r.conflict(user, user.ID); err != nil {
		return err
	}
	cur.Username, cur.Email = user.Username, user.Email
	cur.FirstName, cur.LastName = user.FirstName, user.LastName
	cur.UpdatedAt = r.s.now()
	r.s.users[user.ID] = cur
	return nil
}

func (r *UserRepository) UpdatePassword(_ context.Context, id uint64, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Password = hash
	cur.UpdatedAt = r.s.now()
	r.s.users[id] = cur
	return nil
}

// Delete 级联删除本人的小组、组内帖子以及本人在别处发的帖子
func (r *UserRepository) Delete(_ context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	for gid, g := range r.s.groups {
		if g.CreatorID == id {
			delete(r.s.groups, gid)
		}
	}
	for pid, p := range r.s.posts {
		if _, groupAlive := r.s.groups[p.GroupID]; p.CreatorID == id || !groupAlive {
			delete(r.s.posts, pid)
		}
	}
	delete(r.s.users, id)
	return nil
}

var _ service.UserRepository = (*UserRepository)(nil)
