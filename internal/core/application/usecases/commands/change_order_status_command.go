package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand moves an order to a new status. It backs the status
// patch and the confirm, pick, complete, deliver and cancel quick actions.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.ID
	target  order.Status

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(actor kernel.Actor, orderID kernel.ID, target order.Status) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		actor:   actor,
		orderID: orderID,
		target:  target,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(actor.Validate(), orderID.Validate(), target.Validate()); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) Actor() kernel.Actor  { return c.actor }
func (c ChangeOrderStatusCommand) OrderID() kernel.ID   { return c.orderID }
func (c ChangeOrderStatusCommand) Target() order.Status { return c.target }
