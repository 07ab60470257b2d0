package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderRequestID  = "X-Request-ID"
	ContextLoggerKey = "logger"
)

// RequestLogger 给每个请求分配 request id，并把带 id 的 logger 放进上下文
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Header(HeaderRequestID, rid)
		reqLogger := logger.With("request_id", rid)
		c.Set(ContextLoggerKey, reqLogger)

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		reqLogger.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// Recovery panic 记日志后返回 500
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		LoggerFrom(c).ErrorContext(c.Request.Context(), "panic recovered", "panic", rec)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": "internal_error"})
	})
}

// LoggerFrom 带 request id 的 logger
func LoggerFrom(c *gin.Context) *slog.Logger {
	if v, ok := c.Get(ContextLoggerKey); ok {
		if l, ok := v.(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}
