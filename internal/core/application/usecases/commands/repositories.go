// Package commands contains the operations that change orders.
// Every handler follows the same shape: validate the command, open a unit of
// work, load and mutate aggregates through domain services, then commit.
package commands

import (
	"context"

	"laundry/internal/core/ports"
)

// Unit of Work interfaces give each handler only the repositories it uses.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW is used by commands that only touch existing orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CreateOrderUoW spans the customer directory and the order store, so a
	// customer created for a failed order is rolled back with it.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   customers := uow.CustomerRepository()
	//   orders := uow.OrderRepository()
	//   // ... resolve customer, add order
	//
	//   err = uow.Commit(ctx)
	CreateOrderUoW interface {
		TxManager
		OrderRepoFactory
		CustomerRepoFactory
	}

	CreateOrderUoWFactory interface {
		Create() CreateOrderUoW
	}

	// OutboxUoW is used by the relay.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
