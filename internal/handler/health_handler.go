package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Check 依赖探活，返回 nil 表示正常
type Check func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]Check
}

func NewHealthHandler(checks map[string]Check) *HealthHandler {
	if checks == nil {
		checks = map[string]Check{}
	}
	return &HealthHandler{checks: checks}
}

// Healthz 任一依赖失败返回 503
func (h *HealthHandler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	result := gin.H{}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			status = http.StatusServiceUnavailable
			result[name] = err.Error()
			continue
		}
		result[name] = "ok"
	}
	c.JSON(status, gin.H{"status": http.StatusText(status), "checks": result})
}
