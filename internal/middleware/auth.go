package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"Lee_Groups/internal/apperr"
	"Lee_Groups/internal/policy"
)

const ContextIdentityKey = "identity"

// Authenticator 由 service.AuthService 实现
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (policy.Identity, error)
}

// Authenticate 没有 Authorization 头按匿名处理，带了但无效直接 401
func Authenticate(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(ContextIdentityKey, policy.Anonymous())
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": apperr.CodeInvalidToken})
			return
		}

		id, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			if e := apperr.As(err); e != nil {
				c.AbortWithStatusJSON(e.Kind.Status(), gin.H{"msg": e.Code})
				return
			}
			LoggerFrom(c).ErrorContext(c.Request.Context(), "authenticate failed", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": "internal_error"})
			return
		}

		c.Set(ContextIdentityKey, id)
		c.Next()
	}
}

// IdentityFrom 取当前请求身份，未经过 Authenticate 时视为匿名
func IdentityFrom(c *gin.Context) policy.Identity {
	if v, ok := c.Get(ContextIdentityKey); ok {
		if id, ok := v.(policy.Identity); ok {
			return id
		}
	}
	return policy.Anonymous()
}
