package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	// TopicOrderSubmitted is published when the order endpoint accepts a draft.
	TopicOrderSubmitted = "order.submitted"
	// TopicOrderRejected is published when a submission fails.
	TopicOrderRejected = "order.rejected"
)

// OrderSubmittedEvent records an accepted order.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicOrderSubmitted).
type OrderSubmittedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	FormID     uuid.UUID `json:"form_id"`
	Size       string    `json:"size"`
	Toppings   []string  `json:"toppings"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// OrderRejectedEvent records a failed submission.
type OrderRejectedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	FormID     uuid.UUID `json:"form_id"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}
