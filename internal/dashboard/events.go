package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nfrund/taskboard/internal/pubsub"
	"github.com/nfrund/taskboard/internal/topicmgr"
)

// Topics published by the sign-out flow.
var (
	TopicSessionEnded = topicmgr.DefineModule(topicmgr.TopicConfig{
		Name:        "session.ended",
		Module:      "dashboard",
		Description: "A session was terminated by the provider after a sign-out request",
		Example:     `{"attempt_id":"1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed","user_id":"user:abc","at":"2026-01-01T12:00:00Z"}`,
	})

	TopicSessionEndFailed = topicmgr.DefineModule(topicmgr.TopicConfig{
		Name:        "session.end_failed",
		Module:      "dashboard",
		Description: "Session termination failed or timed out; the user was redirected anyway",
		Example:     `{"attempt_id":"1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed","user_id":"user:abc","error":"context deadline exceeded","at":"2026-01-01T12:00:00Z"}`,
	})
)

// Topics lists every topic the dashboard publishes.
func Topics() []topicmgr.Topic {
	return []topicmgr.Topic{TopicSessionEnded, TopicSessionEndFailed}
}

// SessionExitEvent is the payload published after a termination attempt settles.
type SessionExitEvent struct {
	AttemptID string    `json:"attempt_id"`
	UserID    string    `json:"user_id"`
	Error     string    `json:"error,omitempty"`
	At        time.Time `json:"at"`
}

func publishExit(ctx context.Context, pub pubsub.Publisher, topic topicmgr.Topic, ev SessionExitEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return pub.Publish(ctx, pubsub.Message{
		Topic:    topic.Name(),
		UserID:   ev.UserID,
		Payload:  payload,
		Metadata: map[string]string{"attempt_id": ev.AttemptID},
	})
}
