// Package service 业务规则：身份、令牌、小组、帖子
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"Lee_Groups/internal/event"
)

func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

func resolvePublisher(p event.Publisher, logger *slog.Logger) event.Publisher {
	if p == nil {
		return event.LogPublisher{Logger: logger}
	}
	return p
}

// notifier 事务提交后发事件，失败只记日志，不影响请求结果
type notifier struct {
	publisher event.Publisher
	logger    *slog.Logger
}

func newNotifier(p event.Publisher, logger *slog.Logger) notifier {
	logger = ResolveLogger(logger)
	return notifier{publisher: resolvePublisher(p, logger), logger: logger}
}

func (n notifier) publish(ctx context.Context, ev event.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := n.publisher.Publish(ctx, ev); err != nil {
		n.logger.WarnContext(ctx, "publish event failed", "type", ev.Type, "key", ev.Key, "err", err)
	}
}

// normalize 用户名和邮箱统一去空格、转小写
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
