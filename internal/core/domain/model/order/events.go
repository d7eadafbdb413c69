package order

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
)

// EventType names a domain event. The values double as message topics keys.
type EventType string

const (
	EventOrderCreated         EventType = "order.created"
	EventOrderStatusChanged   EventType = "order.status_changed"
	EventOrderItemsReconciled EventType = "order.items_reconciled"
	EventOrderDeleted         EventType = "order.deleted"
)

// Event is a fact recorded by the aggregate and published after commit.
type Event struct {
	Type           EventType
	OrderID        kernel.ID
	Token          string
	CustomerID     kernel.ID
	Status         Status
	PreviousStatus Status
	ItemCount      int
	Actor          string
	OccurredAt     time.Time
}
