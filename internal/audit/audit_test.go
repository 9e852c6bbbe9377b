package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nfrund/taskboard/internal/dashboard"
	"github.com/nfrund/taskboard/internal/pubsub"
	"github.com/nfrund/taskboard/internal/topicmgr"
	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for the subscriber goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func exitMessage(t *testing.T, topic topicmgr.Topic, ev dashboard.SessionExitEvent) pubsub.Message {
	t.Helper()
	payload, err := json.Marshal(ev)
	require.NoError(t, err)
	return pubsub.Message{Topic: topic.Name(), UserID: ev.UserID, Payload: payload}
}

func TestHandler(t *testing.T) {
	var buf bytes.Buffer
	handler := NewHandler(slog.New(slog.NewJSONHandler(&buf, nil)))
	ctx := context.Background()

	require.NoError(t, handler(ctx, exitMessage(t, dashboard.TopicSessionEnded,
		dashboard.SessionExitEvent{AttemptID: "a1", UserID: "user:1", At: time.Now()})))
	require.NoError(t, handler(ctx, exitMessage(t, dashboard.TopicSessionEndFailed,
		dashboard.SessionExitEvent{AttemptID: "a2", UserID: "user:2", Error: "timeout", At: time.Now()})))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"level":"INFO"`)
	assert.Contains(t, lines[0], `"attempt_id":"a1"`)
	assert.Contains(t, lines[1], `"level":"WARN"`)
	assert.Contains(t, lines[1], `"error":"timeout"`)

	err := handler(ctx, pubsub.Message{Topic: dashboard.TopicSessionEnded.Name(), Payload: []byte("not json")})
	assert.ErrorContains(t, err, "decode session.ended event")
}

func TestModule_RecordsPublishedEvents(t *testing.T) {
	bridge := pubsub.NewWatermillBridge()
	defer bridge.Close()

	var buf syncBuffer
	i := do.New()
	do.ProvideValue[pubsub.Subscriber](i, bridge)
	do.ProvideValue(i, slog.New(slog.NewJSONHandler(&buf, nil)))
	registry := topicmgr.NewRegistry()
	for _, topic := range dashboard.Topics() {
		require.NoError(t, registry.Register(topic))
	}
	do.ProvideValue(i, registry)

	m := New()
	require.NoError(t, m.Boot(context.Background(), nil, i))
	defer m.Shutdown(context.Background())

	require.NoError(t, bridge.Publish(context.Background(), exitMessage(t, dashboard.TopicSessionEnded,
		dashboard.SessionExitEvent{AttemptID: "a3", UserID: "user:3", At: time.Now()})))

	assert.Eventually(t, func() bool {
		return strings.Contains(buf.String(), `"attempt_id":"a3"`)
	}, 2*time.Second, 10*time.Millisecond)
}
