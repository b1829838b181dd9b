package pubsub

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const metaUsername = "username"

// WatermillBridge is an in-process bus backed by watermill's GoChannel.
type WatermillBridge struct {
	channel *gochannel.GoChannel
}

var (
	_ Publisher  = (*WatermillBridge)(nil)
	_ Subscriber = (*WatermillBridge)(nil)
)

// NewWatermillBridge creates the bus.
func NewWatermillBridge() *WatermillBridge {
	return &WatermillBridge{
		channel: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			watermill.NewStdLogger(false, false),
		),
	}
}

// Publish sends msg on its topic. A correlation id missing from msg is
// taken from ctx.
func (b *WatermillBridge) Publish(ctx context.Context, msg Message) error {
	if msg.CorrelationID == "" {
		msg.CorrelationID = CorrelationID(ctx)
	}
	return b.channel.Publish(msg.Topic, toWatermill(msg))
}

// Subscribe runs handler for every message on topic until ctx ends.
func (b *WatermillBridge) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := b.channel.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for wm := range messages {
			msg := fromWatermill(topic, wm)
			hctx := WithCorrelationID(ctx, msg.CorrelationID)
			if err := handler(hctx, msg); err != nil {
				// gochannel redelivers a nacked message at once, forever.
				slog.Error("Dropping unhandled account event",
					"topic", topic, "username", msg.Username,
					"correlation_id", msg.CorrelationID, "error", err)
			}
			wm.Ack()
		}
		slog.Debug("Subscription closed", "topic", topic)
	}()
	return nil
}

// Close stops every subscription.
func (b *WatermillBridge) Close() error {
	return b.channel.Close()
}

func toWatermill(msg Message) *message.Message {
	wm := message.NewMessage(watermill.NewUUID(), msg.Payload)
	for k, v := range msg.Metadata {
		wm.Metadata.Set(k, v)
	}
	wm.Metadata.Set(metaUsername, msg.Username)
	if msg.CorrelationID != "" {
		middleware.SetCorrelationID(msg.CorrelationID, wm)
	}
	return wm
}

func fromWatermill(topic string, wm *message.Message) Message {
	msg := Message{
		Topic:         topic,
		Username:      wm.Metadata.Get(metaUsername),
		CorrelationID: middleware.MessageCorrelationID(wm),
		Payload:       wm.Payload,
		Metadata:      map[string]string{},
	}
	for k, v := range wm.Metadata {
		if k != metaUsername && k != middleware.CorrelationIDMetadataKey {
			msg.Metadata[k] = v
		}
	}
	return msg
}
