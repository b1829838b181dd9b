package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Event[T] binds a topic name to its payload type.
type Event[T any] struct {
	topicName string
}

// NewEvent creates a typed event for the given topic.
func NewEvent[T any](name string) Event[T] {
	return Event[T]{topicName: name}
}

// Name returns the topic name.
func (e Event[T]) Name() string {
	return e.topicName
}

// Publish sends a typed event. The compiler ensures payload matches T.
func Publish[T any](ctx context.Context, p Publisher, event Event[T], username string, payload T) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", event.Name(), err)
	}
	return p.Publish(ctx, Message{
		Topic:    event.Name(),
		Username: username,
		Payload:  data,
	})
}

// Decode unmarshals a message received for event.
func Decode[T any](event Event[T], msg Message) (T, error) {
	var payload T
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("decode %s payload: %w", event.Name(), err)
	}
	return payload, nil
}

// AccountRegistered is published once an account has been created.
type AccountRegistered struct {
	Username string    `json:"username"`
	Email    string    `json:"email,omitempty"`
	At       time.Time `json:"at"`
}

// AccountRolledBack is published when an account's credentials were removed
// because its password could not be delivered.
type AccountRolledBack struct {
	Username string    `json:"username"`
	Reason   string    `json:"reason"`
	At       time.Time `json:"at"`
}

var (
	// Registered is the topic for AccountRegistered events.
	Registered = NewEvent[AccountRegistered]("account.registered")
	// RolledBack is the topic for AccountRolledBack events.
	RolledBack = NewEvent[AccountRolledBack]("account.rolled_back")
)
