// Package outboxrepo stores order events in the order_outbox table inside the
// business transaction and hands them to the relay in creation order.
package outboxrepo

import (
	"time"

	"laundry/internal/core/ports"
)

// DefaultTopic receives order events when no topic is configured.
const DefaultTopic = "laundry.order-events"

type OutboxDTO struct {
	EventID   string     `gorm:"type:varchar(26);primaryKey"`
	EventType string     `gorm:"type:varchar(64);not null"`
	Topic     string     `gorm:"type:varchar(255);not null"`
	Key       string     `gorm:"type:varchar(64);not null"`
	Payload   []byte     `gorm:"type:jsonb;not null"`
	CreatedAt time.Time  `gorm:"not null;index"`
	SentAt    *time.Time `gorm:"index"`
}

func (OutboxDTO) TableName() string {
	return "order_outbox"
}

// eventPayload is the wire form of an order event.
type eventPayload struct {
	EventID        string    `json:"event_id"`
	Type           string    `json:"type"`
	OrderID        int64     `json:"order_id"`
	Token          string    `json:"token"`
	CustomerID     int64     `json:"customer_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	ItemCount      int       `json:"item_count"`
	Actor          string    `json:"actor"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func toMessage(dto OutboxDTO) ports.OutboxMessage {
	return ports.OutboxMessage{
		EventID:   dto.EventID,
		Topic:     dto.Topic,
		Key:       dto.Key,
		Payload:   dto.Payload,
		CreatedAt: dto.CreatedAt,
	}
}
