// Package ports defines the contracts between the order core and its adapters:
// repositories bound to a unit of work, and the outbox publisher.
package ports

import (
	"context"
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
)

// ErrDuplicateToken is returned by OrderRepository.Add when storage already
// holds an order with the same token.
var ErrDuplicateToken = errors.New("order token already exists")

// OrderRepository persists order aggregates together with their address
// snapshot and items.
type OrderRepository interface {
	// Add inserts the address, the order and its items, then assigns the
	// storage ids back onto the aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order row and reconciles item rows: removed lines are
	// deleted, existing ones updated and new ones inserted.
	Update(ctx context.Context, aggregate *order.Order) error

	// Delete removes the items, the order and its address snapshot.
	Delete(ctx context.Context, aggregate *order.Order) error

	// Get loads an order. Returns ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// TokenExists backs the token generator's collision check.
	TokenExists(ctx context.Context, token string) (bool, error)
}
