package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Lee_Groups/internal/pkg"
)

type recordProducer struct {
	key     string
	value   []byte
	headers map[string]string
}

func (r *recordProducer) Send(_ context.Context, key string, value []byte, headers map[string]string) error {
	r.key, r.value, r.headers = key, value, headers
	return nil
}

type funcPublisher func(ctx context.Context, ev Event) error

func (f funcPublisher) Publish(ctx context.Context, ev Event) error { return f(ctx, ev) }

func TestKafkaPublisherEncodesEvent(t *testing.T) {
	rec := &recordProducer{}
	p := &KafkaPublisher{producer: rec}

	ev := New(PostCreated, 12, map[string]any{"group_id": 3})
	require.NoError(t, p.Publish(context.Background(), ev))

	assert.Equal(t, "12", rec.key)
	assert.Equal(t, PostCreated, rec.headers["event_type"])

	var decoded Event
	require.NoError(t, json.Unmarshal(rec.value, &decoded))
	assert.Equal(t, PostCreated, decoded.Type)
	assert.Equal(t, "12", decoded.Key)
	assert.EqualValues(t, 3, decoded.Payload["group_id"])
}

func TestMultiJoinsErrors(t *testing.T) {
	var calls int
	boom := errors.New("boom")
	m := Multi{
		funcPublisher(func(context.Context, Event) error { calls++; return boom }),
		nil,
		funcPublisher(func(context.Context, Event) error { calls++; return nil }),
	}

	err := m.Publish(context.Background(), New(GroupCreated, 1, nil))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestWelcomeMailerOnlyOnRegistration(t *testing.T) {
	var sentTo, body string
	m := &WelcomeMailer{send: func(_ pkg.SMTPConfig, to, _, htmlBody string) error {
		sentTo, body = to, htmlBody
		return nil
	}}

	require.NoError(t, m.Publish(context.Background(), New(GroupCreated, 1, map[string]any{"email": "x@y.z"})))
	assert.Empty(t, sentTo)

	require.NoError(t, m.Publish(context.Background(), New(UserRegistered, 1, map[string]any{"email": "alice@x.com", "username": "alice"})))
	assert.Equal(t, "alice@x.com", sentTo)
	assert.Contains(t, body, "alice")
}

func TestLogPublisherNeverFails(t *testing.T) {
	assert.NoError(t, LogPublisher{}.Publish(context.Background(), New(UserDeleted, 5, nil)))
}
