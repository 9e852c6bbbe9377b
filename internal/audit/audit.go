// Package audit writes session lifecycle events to the structured log.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/taskboard/internal/dashboard"
	"github.com/nfrund/taskboard/internal/module"
	"github.com/nfrund/taskboard/internal/pubsub"
	"github.com/nfrund/taskboard/internal/topicmgr"
	"github.com/samber/do/v2"
)

// Module subscribes to every topic the dashboard declares for the lifetime of
// the server.
type Module struct {
	module.BaseModule
	cancel context.CancelFunc
}

// New creates the audit module.
func New() *Module {
	return &Module{}
}

// Name implements module.Module.
func (m *Module) Name() string { return "audit" }

// Boot starts the subscriptions. They outlive ctx and stop on Shutdown.
func (m *Module) Boot(ctx context.Context, router *echo.Group, i do.Injector) error {
	sub, err := do.Invoke[pubsub.Subscriber](i)
	if err != nil {
		return err
	}
	logger, err := do.Invoke[*slog.Logger](i)
	if err != nil {
		return err
	}
	registry, err := do.Invoke[*topicmgr.Registry](i)
	if err != nil {
		return err
	}

	subCtx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	handler := NewHandler(logger)
	for _, topic := range registry.ListByModule("dashboard") {
		if err := sub.Subscribe(subCtx, topic.Name(), handler); err != nil {
			cancel()
			return fmt.Errorf("subscribe %s: %w", topic.Name(), err)
		}
	}
	return nil
}

// Shutdown stops the subscriptions.
func (m *Module) Shutdown(ctx context.Context) error {
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}

// NewHandler returns the message handler that records one exit event.
func NewHandler(logger *slog.Logger) pubsub.Handler {
	return func(ctx context.Context, msg pubsub.Message) error {
		var ev dashboard.SessionExitEvent
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			return fmt.Errorf("decode %s event: %w", msg.Topic, err)
		}

		attrs := []any{
			"topic", msg.Topic,
			"attempt_id", ev.AttemptID,
			"user_id", ev.UserID,
			"at", ev.At,
		}
		if msg.Topic == dashboard.TopicSessionEndFailed.Name() {
			logger.WarnContext(ctx, "audit: session termination failed", append(attrs, "error", ev.Error)...)
			return nil
		}
		logger.InfoContext(ctx, "audit: session ended", attrs...)
		return nil
	}
}
