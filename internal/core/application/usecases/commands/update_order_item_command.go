package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrUpdateOrderItemCommandIsNotConstructed = errors.New(
	"UpdateOrderItemCommand must be created via NewUpdateOrderItemCommand constructor",
)

// UpdateOrderItemCommand edits one line of an order in place.
type UpdateOrderItemCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.ID
	itemID  kernel.ID
	change  order.ItemChange

	guard guard.ConstructorGuard
}

func NewUpdateOrderItemCommand(
	actor kernel.Actor,
	orderID, itemID kernel.ID,
	change order.ItemChange,
) (UpdateOrderItemCommand, error) {
	cmd := UpdateOrderItemCommand{
		actor:   actor,
		orderID: orderID,
		itemID:  itemID,
		change:  change,
		guard:   guard.NewConstructorGuard(),
	}

	var emptyErr error
	if change == (order.ItemChange{}) {
		emptyErr = errs.NewValueIsRequiredError("item change")
	}
	var quantityErr error
	if change.Quantity < 0 {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", change.Quantity, 1, "unbounded")
	}

	if err := errors.Join(actor.Validate(), orderID.Validate(), itemID.Validate(), emptyErr, quantityErr); err != nil {
		return UpdateOrderItemCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderItemCommandIsNotConstructed)
}

func (c UpdateOrderItemCommand) Actor() kernel.Actor      { return c.actor }
func (c UpdateOrderItemCommand) OrderID() kernel.ID       { return c.orderID }
func (c UpdateOrderItemCommand) ItemID() kernel.ID        { return c.itemID }
func (c UpdateOrderItemCommand) Change() order.ItemChange { return c.change }
