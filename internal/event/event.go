// Package event 写操作提交后发出的领域事件
package event

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"Lee_Groups/internal/pkg"
)

const (
	UserRegistered = "user.registered"
	UserDeleted    = "user.deleted"
	GroupCreated   = "group.created"
	GroupDeleted   = "group.deleted"
	PostCreated    = "post.created"
	PostDeleted    = "post.deleted"
)

type Event struct {
	Type       string         `json:"type"`
	Key        string         `json:"key"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

func New(typ string, id uint64, payload map[string]any) Event {
	return Event{
		Type:       typ,
		Key:        pkg.MakeKeyFromID(id),
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// LogPublisher 未配置 kafka 时的默认实现
type LogPublisher struct {
	Logger *slog.Logger
}

func (p LogPublisher) Publish(ctx context.Context, ev Event) error {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "event", "type", ev.Type, "key", ev.Key)
	return nil
}

type producer interface {
	Send(ctx context.Context, key string, value []byte, headers map[string]string) error
}

// KafkaPublisher 事件按实体 id 作为 key 写入 kafka
type KafkaPublisher struct {
	producer producer
}

func NewKafkaPublisher(p *pkg.KafkaProducer) *KafkaPublisher {
	return &KafkaPublisher{producer: p}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.producer.Send(ctx, ev.Key, value, map[string]string{"event_type": ev.Type})
}

// Multi 依次投递给全部 publisher，错误合并返回
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, ev Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
