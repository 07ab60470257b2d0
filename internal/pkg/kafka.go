package pkg

import (
	"context"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

type KafkaConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// KafkaProducer 同步写入，保证事件发出后再返回
type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

func NewKafkaProducer(cfg KafkaConfig) *KafkaProducer {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		Async:                  false,
		WriteTimeout:           cfg.WriteTimeout,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return &KafkaProducer{writer: w, topic: cfg.Topic}
}

func (p *KafkaProducer) Topic() string { return p.topic }

func (p *KafkaProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// Send 同一个 key 落在同一分区，保证单个实体的事件有序
func (p *KafkaProducer) Send(ctx context.Context, key string, value []byte, headers map[string]string) error {
	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
	}
	for k, v := range headers {
		msg.Headers = append(msg.Headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	return p.writer.WriteMessages(ctx, msg)
}

func MakeKeyFromID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
