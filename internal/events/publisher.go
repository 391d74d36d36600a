package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Bus is a watermill gochannel pub/sub carrying audit events in-process.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
}

// NewBus creates the in-process event bus.
func NewBus(logger *slog.Logger) *Bus {
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
	return &Bus{pubsub: pubsub, logger: logger}
}

// Publish emits an event on the audit topic.
func (b *Bus) Publish(ctx context.Context, event Event) error {
	data, err := event.Marshal()
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	return b.pubsub.Publish(AuditTopic, msg)
}

// RunAuditLogger consumes the audit topic and writes one structured log line
// per event, until ctx is done.
func (b *Bus) RunAuditLogger(ctx context.Context) error {
	messages, err := b.pubsub.Subscribe(ctx, AuditTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var event Event
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				b.logger.Warn("malformed audit event", "error", err)
				msg.Ack()
				continue
			}
			b.logger.Info("audit",
				"event", event.Type,
				"occurred_at", event.OccurredAt,
				"payload", event.Payload,
			)
			msg.Ack()
		}
	}()
	return nil
}

func (b *Bus) Close() error {
	return b.pubsub.Close()
}
