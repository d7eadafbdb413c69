package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand is a staff edit of an order: service, address, status and
// optionally the full line set.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.ID
	update  services.OrderUpdate

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(actor kernel.Actor, orderID kernel.ID, update services.OrderUpdate) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		actor:   actor,
		orderID: orderID,
		update:  update,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) Actor() kernel.Actor          { return c.actor }
func (c UpdateOrderCommand) OrderID() kernel.ID           { return c.orderID }
func (c UpdateOrderCommand) Update() services.OrderUpdate { return c.update }
