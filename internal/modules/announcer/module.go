// Package announcer reacts to account lifecycle events: it writes an audit
// log line and counts the event.
package announcer

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/joinform/internal/metrics"
	"github.com/nfrund/joinform/internal/module"
	"github.com/nfrund/joinform/internal/pubsub"
	"github.com/samber/do/v2"
)

// AnnouncerModule subscribes to the account events published by the
// membership service.
type AnnouncerModule struct {
	module.BaseModule
	cancel context.CancelFunc
}

// New creates a new AnnouncerModule instance.
func New() *AnnouncerModule {
	return &AnnouncerModule{}
}

// Name returns the module name.
func (m *AnnouncerModule) Name() string {
	return "announcer"
}

// Boot subscribes to the account topics.
func (m *AnnouncerModule) Boot(ctx context.Context, g *echo.Group, i do.Injector) error {
	bus := do.MustInvoke[*pubsub.WatermillBridge](i)
	counter := do.MustInvoke[*metrics.Metrics](i)

	subCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	if err := bus.Subscribe(subCtx, pubsub.Registered.Name(), func(ctx context.Context, msg pubsub.Message) error {
		event, err := pubsub.Decode(pubsub.Registered, msg)
		if err != nil {
			return err
		}
		counter.RecordEvent(msg.Topic)
		slog.InfoContext(ctx, "audit: account registered", "correlation_id", msg.CorrelationID, "username", event.Username, "email", event.Email, "at", event.At)
		return nil
	}); err != nil {
		cancel()
		return err
	}

	if err := bus.Subscribe(subCtx, pubsub.RolledBack.Name(), func(ctx context.Context, msg pubsub.Message) error {
		event, err := pubsub.Decode(pubsub.RolledBack, msg)
		if err != nil {
			return err
		}
		counter.RecordEvent(msg.Topic)
		slog.WarnContext(ctx, "audit: account rolled back", "correlation_id", msg.CorrelationID, "username", event.Username, "reason", event.Reason, "at", event.At)
		return nil
	}); err != nil {
		cancel()
		return err
	}

	slog.Info("AnnouncerModule subscribed to account events")
	return nil
}

// Shutdown stops the subscriptions.
func (m *AnnouncerModule) Shutdown(ctx context.Context) error {
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}
