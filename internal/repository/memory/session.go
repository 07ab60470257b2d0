package memory

import (
	"context"
	"sync"
	"time"

	"Lee_Groups/internal/repository"
	"Lee_Groups/internal/service"
)

type session struct {
	access        string
	accessExpire  time.Time
	refreshID     string
	refreshExpire time.Time
}

// SessionStore 未配置 redis 时使用，多实例部署下不共享
type SessionStore struct {
	mu       sync.Mutex
	now      func() time.Time
	sessions map[uint64]session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{now: time.Now, sessions: map[uint64]session{}}
}

func (s *SessionStore) Save(_ context.Context, userID uint64, accessToken string, accessTTL time.Duration, refreshID string, refreshTTL time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sessions[userID] = session{
		access:        accessToken,
		accessExpire:  now.Add(accessTTL),
		refreshID:     refreshID,
		refreshExpire: now.Add(refreshTTL),
	}
	return nil
}

func (s *SessionStore) SetAccessToken(_ context.Context, userID uint64, accessToken string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return repository.ErrSessionNotFound
	}
	sess.access = accessToken
	sess.accessExpire = s.now().Add(ttl)
	s.sessions[userID] = sess
	return nil
}

func (s *SessionStore) AccessToken(_ context.Context, userID uint64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok || sess.access == "" || !s.now().Before(sess.accessExpire) {
		return "", repository.ErrSessionNotFound
	}
	return sess.access, nil
}

func (s *SessionStore) RefreshID(_ context.Context, userID uint64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok || !s.now().Before(sess.refreshExpire) {
		return "", repository.ErrSessionNotFound
	}
	return sess.refreshID, nil
}

func (s *SessionStore) Delete(_ context.Context, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

var _ service.SessionStore = (*SessionStore)(nil)
