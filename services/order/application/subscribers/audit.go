// Package subscribers holds in-process consumers of order domain events.
package subscribers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/pizzaorder/pkg/logger"
	orderevents "github.com/ghuser/pizzaorder/services/order/domain/events"
)

// Bus is the slice of events.EventBus the subscribers need.
type Bus interface {
	Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error)
}

// RegisterAudit subscribes the audit log to order.submitted and order.rejected.
// Subscriptions end when ctx is canceled.
func RegisterAudit(ctx context.Context, bus Bus, log logger.Logger) error {
	handlers := map[string]func(context.Context, *message.Message) error{
		orderevents.TopicOrderSubmitted: auditSubmitted(log),
		orderevents.TopicOrderRejected:  auditRejected(log),
	}
	for topic, h := range handlers {
		errCh, err := bus.Subscribe(ctx, topic, h)
		if err != nil {
			return fmt.Errorf("audit: %w", err)
		}
		go func() {
			for err := range errCh {
				log.ErrorContext(ctx, "audit subscriber error", "topic", topic, "error", err)
			}
		}()
	}
	return nil
}

func auditSubmitted(log logger.Logger) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var ev orderevents.OrderSubmittedEvent
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			return fmt.Errorf("decode %s: %w", orderevents.TopicOrderSubmitted, err)
		}
		log.InfoContext(ctx, "audit: order submitted",
			"event_id", ev.EventID.String(),
			"form_id", ev.FormID.String(),
			"size", ev.Size,
			"toppings", ev.Toppings,
			"message", ev.Message,
		)
		return nil
	}
}

func auditRejected(log logger.Logger) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var ev orderevents.OrderRejectedEvent
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			return fmt.Errorf("decode %s: %w", orderevents.TopicOrderRejected, err)
		}
		log.WarnContext(ctx, "audit: order rejected",
			"event_id", ev.EventID.String(),
			"form_id", ev.FormID.String(),
			"message", ev.Message,
		)
		return nil
	}
}
