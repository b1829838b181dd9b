// Package pubsub carries account lifecycle events between the join form
// and the components that react to them (audit log, metrics).
package pubsub

import "context"

// Message is an event on the bus.
type Message struct {
	Topic string
	// Username is the account the event is about.
	Username string
	// CorrelationID ties the event to the HTTP request that caused it.
	CorrelationID string
	// Payload is the JSON encoded event.
	Payload  []byte
	Metadata map[string]string
}

// Handler processes a received message.
type Handler func(ctx context.Context, msg Message) error

// Publisher sends messages.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// Subscriber receives messages. Subscribe returns immediately; the handler
// runs in the background until ctx is canceled.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler Handler) error
}

type correlationKey struct{}

// WithCorrelationID returns a context whose published events carry id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID returns the id set by WithCorrelationID, if any.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}
