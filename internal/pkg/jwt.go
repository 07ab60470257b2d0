package pkg

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenInvalid      = errors.New("token invalid")
	ErrTokenWrongType    = errors.New("token type mismatch")
	ErrTokenParseFailure = errors.New("token parse failure")
)

const (
	DefaultAccessTTL  = time.Minute * 30
	DefaultRefreshTTL = time.Hour * 24

	SubjectAccess  = "access"
	SubjectRefresh = "refresh"
)

type Claims struct {
	UserID uint64 `json:"user_id"`
	Role   int    `json:"role"`
	jwt.RegisteredClaims
}

type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	// RefreshID 刷新令牌的 jti，登录时写入会话存储
	RefreshID string `json:"-"`
}

// TokenIssuer access/refresh 使用不同密钥，Subject 区分令牌类型
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Now           func() time.Time
}

func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
		Now:           time.Now,
	}
}

func (t *TokenIssuer) sign(userID uint64, role int, subject string, ttl time.Duration, secret []byte) (string, string, error) {
	now := t.Now()
	jti := uuid.NewString()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   subject,
		},
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// GeneratePair 登录时签发一对令牌
func (t *TokenIssuer) GeneratePair(userID uint64, role int) (*Pair, error) {
	access, err := t.GenerateAccess(userID, role)
	if err != nil {
		return nil, err
	}
	refresh, jti, err := t.sign(userID, role, SubjectRefresh, t.RefreshTTL, t.refreshSecret)
	if err != nil {
		return nil, err
	}
	return &Pair{AccessToken: access, RefreshToken: refresh, RefreshID: jti}, nil
}

func (t *TokenIssuer) GenerateAccess(userID uint64, role int) (string, error) {
	access, _, err := t.sign(userID, role, SubjectAccess, t.AccessTTL, t.accessSecret)
	return access, err
}

// ParseAccess 解析 access
func (t *TokenIssuer) ParseAccess(tokenStr string) (*Claims, error) {
	return t.parse(tokenStr, SubjectAccess, t.accessSecret)
}

// ParseRefresh 解析 refresh，是否被吊销由调用方查会话存储
func (t *TokenIssuer) ParseRefresh(tokenStr string) (*Claims, error) {
	return t.parse(tokenStr, SubjectRefresh, t.refreshSecret)
}

func (t *TokenIssuer) parse(tokenStr, subject string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.Now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenInvalid
		default:
			return nil, ErrTokenParseFailure
		}
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenParseFailure
	}
	if claims.Subject != subject {
		return nil, ErrTokenWrongType
	}
	if claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
