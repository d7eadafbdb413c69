package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand removes an order with its items and address snapshot.
type DeleteOrderCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.ID

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(actor kernel.Actor, orderID kernel.ID) (DeleteOrderCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return DeleteOrderCommand{}, err
	}
	return DeleteOrderCommand{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) Actor() kernel.Actor { return c.actor }
func (c DeleteOrderCommand) OrderID() kernel.ID  { return c.orderID }
