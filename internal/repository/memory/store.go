// Package memory 进程内存储，本地开发和测试用；唯一性和级联规则与 rdb 保持一致
package memory

import (
	"sort"
	"sync"
	"time"

	"Lee_Groups/internal/model"
)

type Store struct {
	mu     sync.RWMutex
	now    func() time.Time
	nextID uint64
	users  map[uint64]model.User
	groups map[uint64]model.Group
	posts  map[uint64]model.Post
}

func NewStore() *Store {
	return &Store{
		now:    func() time.Time { return time.Now().UTC() },
		users:  map[uint64]model.User{},
		groups: map[uint64]model.Group{},
		posts:  map[uint64]model.Post{},
	}
}

// SetClock 测试用
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Users() *UserRepository   { return &UserRepository{s: s} }
func (s *Store) Groups() *GroupRepository { return &GroupRepository{s: s} }
func (s *Store) Posts() *PostRepository   { return &PostRepository{s: s} }

// 调用方需持有锁
func (s *Store) id() uint64 {
	s.nextID++
	return s.nextID
}

func (s *Store) creator(id uint64) model.User {
	return s.users[id]
}

func newestFirst(ti, tj time.Time, idi, idj uint64) bool {
	if !ti.Equal(tj) {
		return ti.After(tj)
	}
	return idi > idj
}

func window[T any](list []T, offset, limit int) []T {
	if offset >= len(list) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}

func sortGroups(list []model.Group) {
	sort.Slice(list, func(i, j int) bool {
		return newestFirst(list[i].CreatedAt, list[j].CreatedAt, list[i].ID, list[j].ID)
	})
}

func sortPosts(list []model.Post) {
	sort.Slice(list, func(i, j int) bool {
		return newestFirst(list[i].CreatedAt, list[j].CreatedAt, list[i].ID, list[j].ID)
	})
}
