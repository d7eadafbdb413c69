package ports

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/order"
)

// OutboxMessage is a serialized domain event waiting to be published.
type OutboxMessage struct {
	EventID   string
	Topic     string
	Key       string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxRepository stores events in the same transaction as the state change
// that produced them.
type OutboxRepository interface {
	Append(ctx context.Context, events []order.Event) error

	// Pending locks up to limit unsent messages, oldest first. Rows locked by
	// another relay are skipped.
	Pending(ctx context.Context, limit int) ([]OutboxMessage, error)

	MarkSent(ctx context.Context, eventIDs []string, at time.Time) error
}

// EventPublisher delivers outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, messages []OutboxMessage) error
}
