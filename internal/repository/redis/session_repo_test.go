package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Lee_Groups/internal/repository"
)

func newTestRepo(t *testing.T) (*SessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewSessionRepository(rdb), mr
}

func TestSessionSaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepo(t)

	require.NoError(t, repo.Save(ctx, 7, "access-1", time.Minute, "jti-1", time.Hour))
	assert.True(t, mr.Exists("login:user:token:7"))

	tok, err := repo.AccessToken(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "access-1", tok)
	jti, err := repo.RefreshID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "jti-1", jti)
	assert.Equal(t, time.Minute, mr.TTL("login:user:token:7"))
	assert.Equal(t, time.Hour, mr.TTL("login:user:refresh:7"))
}

func TestSessionAccessExpiresRefreshSurvives(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepo(t)
	require.NoError(t, repo.Save(ctx, 7, "access-1", time.Minute, "jti-1", time.Hour))

	mr.FastForward(2 * time.Minute)
	_, err := repo.AccessToken(ctx, 7)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)

	require.NoError(t, repo.SetAccessToken(ctx, 7, "access-2", time.Minute))
	tok, err := repo.AccessToken(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "access-2", tok)
}

func TestSetAccessTokenWithoutSession(t *testing.T) {
	repo, _ := newTestRepo(t)
	err := repo.SetAccessToken(context.Background(), 9, "x", time.Minute)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestSessionDelete(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepo(t)
	require.NoError(t, repo.Save(ctx, 7, "a", time.Minute, "j", time.Hour))
	require.NoError(t, repo.Delete(ctx, 7))

	assert.False(t, mr.Exists("login:user:token:7"))
	_, err := repo.RefreshID(ctx, 7)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestRedisUnavailable(t *testing.T) {
	repo, mr := newTestRepo(t)
	mr.Close()
	_, err := repo.AccessToken(context.Background(), 1)
	assert.ErrorIs(t, err, ErrRedisUnavailable)
}
