package queries

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery fetches one order on behalf of actor.
//
// Example:
//
//	query, err := NewGetOrderQuery(actor, 42)
//	if err != nil {
//	    return err
//	}
//	details, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	actor   kernel.Actor
	orderID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(actor kernel.Actor, orderID kernel.ID) (GetOrderQuery, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Actor() kernel.Actor { return q.actor }
func (q GetOrderQuery) OrderID() kernel.ID  { return q.orderID }
