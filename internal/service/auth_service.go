package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"Lee_Groups/internal/apperr"
	"Lee_Groups/internal/pkg"
	"Lee_Groups/internal/policy"
	"Lee_Groups/internal/repository"
)

type AuthService struct {
	users    UserRepository
	sessions SessionStore
	issuer   *pkg.TokenIssuer
	logger   *slog.Logger
}

func NewAuthService(users UserRepository, sessions SessionStore, issuer *pkg.TokenIssuer, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		issuer:   issuer,
		logger:   ResolveLogger(logger),
	}
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// 账号不存在时也做一次 bcrypt 比较，避免从耗时上区分账号是否存在
func compareDummy(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = pkg.HashPassword(uuid.NewString())
	})
	pkg.ComparePassword(dummyHash, password)
}

func invalidCredentials() error { return apperr.Authentication(apperr.CodeInvalidCredentials) }

func invalidToken() error { return apperr.Authentication(apperr.CodeInvalidToken) }

// Login 用户名或邮箱 + 密码，成功后记录登录态
func (s *AuthService) Login(ctx context.Context, login, password string) (*pkg.Pair, error) {
	user, err := s.users.FindByLogin(ctx, normalize(login))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, errors.Wrap(err, "find user")
		}
		compareDummy(password)
		return nil, invalidCredentials()
	}
	if !pkg.ComparePassword(user.Password, password) {
		return nil, invalidCredentials()
	}

	pair, err := s.issuer.GeneratePair(user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "sign tokens")
	}
	if err = s.sessions.Save(ctx, user.ID, pair.AccessToken, s.issuer.AccessTTL, pair.RefreshID, s.issuer.RefreshTTL); err != nil {
		return nil, errors.Wrap(err, "save session")
	}
	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return pair, nil
}

// Refresh 用 refresh token 换新的 access token
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.issuer.ParseRefresh(refreshToken)
	if err != nil {
		return "", invalidToken()
	}

	jti, err := s.sessions.RefreshID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return "", invalidToken()
	}
	if err != nil {
		return "", errors.Wrap(err, "load session")
	}
	if jti != claims.ID {
		return "", invalidToken()
	}

	// 角色以库里为准
	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", invalidToken()
	}
	if err != nil {
		return "", errors.Wrap(err, "find user")
	}

	access, err := s.issuer.GenerateAccess(user.ID, user.Role)
	if err != nil {
		return "", errors.Wrap(err, "sign access token")
	}
	err = s.sessions.SetAccessToken(ctx, user.ID, access, s.issuer.AccessTTL)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return "", invalidToken()
	}
	if err != nil {
		return "", errors.Wrap(err, "save session")
	}
	return access, nil
}

// Authenticate 校验 access token 并且必须是当前登录态里的那一个
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (policy.Identity, error) {
	claims, err := s.issuer.ParseAccess(accessToken)
	if err != nil {
		return policy.Anonymous(), invalidToken()
	}
	stored, err := s.sessions.AccessToken(ctx, claims.UserID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return policy.Anonymous(), invalidToken()
	}
	if err != nil {
		return policy.Anonymous(), errors.Wrap(err, "load session")
	}
	if stored != accessToken {
		return policy.Anonymous(), invalidToken()
	}
	return policy.Identity{UserID: claims.UserID, Role: claims.Role}, nil
}

func (s *AuthService) Logout(ctx context.Context, id policy.Identity) error {
	if err := policy.Authorize(policy.UserSelf, id, id.UserID); err != nil {
		return err
	}
	return errors.Wrap(s.sessions.Delete(ctx, id.UserID), "drop session")
}
