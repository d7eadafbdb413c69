package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand is a request to open an order. A nil actor means a guest
// request, which must name the customer.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(&staff,
//	    &services.CustomerHint{Name: "Asha", Mobile: "9000000001"},
//	    order.AddressDetails{Line1: "12 MG Road", City: "Bengaluru", Pincode: "560001"},
//	    order.WashIron,
//	    []order.LineItem{{Category: "Shirts", Product: "Formal Shirt", Quantity: 2}},
//	)
//	if err != nil {
//	    return err
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor       *kernel.Actor
	hint        *services.CustomerHint
	address     order.AddressDetails
	serviceType order.ServiceType
	items       []order.LineItem

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	actor *kernel.Actor,
	hint *services.CustomerHint,
	address order.AddressDetails,
	serviceType order.ServiceType,
	items []order.LineItem,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		address: address,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor, hint),
		cmd.setServiceType(serviceType),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() *kernel.Actor           { return c.actor }
func (c CreateOrderCommand) Hint() *services.CustomerHint   { return c.hint }
func (c CreateOrderCommand) Address() order.AddressDetails  { return c.address }
func (c CreateOrderCommand) ServiceType() order.ServiceType { return c.serviceType }
func (c CreateOrderCommand) Items() []order.LineItem        { return c.items }
func (c CreateOrderCommand) IsGuest() bool                  { return c.actor == nil }

func (c *CreateOrderCommand) setActor(actor *kernel.Actor, hint *services.CustomerHint) error {
	if actor != nil {
		if err := actor.Validate(); err != nil {
			return err
		}
	} else if hint == nil {
		return errs.NewValueIsRequiredError("customer name and mobile")
	}
	c.actor = actor
	c.hint = hint
	return nil
}

func (c *CreateOrderCommand) setServiceType(serviceType order.ServiceType) error {
	if serviceType == order.ServiceUnknown {
		serviceType = order.DefaultServiceType
	}
	if err := serviceType.Validate(); err != nil {
		return err
	}
	c.serviceType = serviceType
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.LineItem) error {
	if err := services.NewItemMerger().Validate(items); err != nil {
		return err
	}
	c.items = append([]order.LineItem(nil), items...)
	return nil
}
