package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"Lee_Groups/internal/repository"
	"Lee_Groups/internal/service"
)

var ErrRedisUnavailable = errors.New("redis unavailable")

const (
	UserTokenPrefix   = "login:user:token"
	UserRefreshPrefix = "login:user:refresh"
)

// SessionRepository 登录态白名单：access token 与 refresh jti 分两个 key，各自带 TTL
type SessionRepository struct {
	RDB *redis.Client
}

func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{RDB: rdb}
}

func tokenKey(userID uint64) string {
	return fmt.Sprintf("%s:%d", UserTokenPrefix, userID)
}

func refreshKey(userID uint64) string {
	return fmt.Sprintf("%s:%d", UserRefreshPrefix, userID)
}

// Save 新登录覆盖旧会话，旧设备上的令牌随之失效
func (r *SessionRepository) Save(ctx context.Context, userID uint64, accessToken string, accessTTL time.Duration, refreshID string, refreshTTL time.Duration) error {
	_, err := r.RDB.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, tokenKey(userID), accessToken, accessTTL)
		p.Set(ctx, refreshKey(userID), refreshID, refreshTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// SetAccessToken 刷新后替换 access，refresh 会话已失效时不写
func (r *SessionRepository) SetAccessToken(ctx context.Context, userID uint64, accessToken string, ttl time.Duration) error {
	n, err := r.RDB.Exists(ctx, refreshKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if n == 0 {
		return repository.ErrSessionNotFound
	}
	if err = r.RDB.Set(ctx, tokenKey(userID), accessToken, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (r *SessionRepository) AccessToken(ctx context.Context, userID uint64) (string, error) {
	return r.get(ctx, tokenKey(userID))
}

func (r *SessionRepository) RefreshID(ctx context.Context, userID uint64) (string, error) {
	return r.get(ctx, refreshKey(userID))
}

func (r *SessionRepository) get(ctx context.Context, key string) (string, error) {
	val, err := r.RDB.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", repository.ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return val, nil
}

func (r *SessionRepository) Delete(ctx context.Context, userID uint64) error {
	if err := r.RDB.Del(ctx, tokenKey(userID), refreshKey(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

var _ service.SessionStore = (*SessionRepository)(nil)
