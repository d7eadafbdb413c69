package services

import (
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
)

// OrderUpdate is a partial update. Nil fields are left alone; a non-nil Items
// replaces the whole line set.
type OrderUpdate struct {
	Status      *order.Status
	ServiceType *order.ServiceType
	Address     *order.AddressDetails
	Items       []ItemPatch
}

func (u OrderUpdate) touchesContent() bool {
	return u.ServiceType != nil || u.Address != nil || u.Items != nil
}

// Outcome reports what an update changed.
type Outcome struct {
	Previous      order.Status
	StatusChanged bool
}

// OrderLifecycle applies updates to an order.
//
// Everything that can be checked up front is checked before the order is
// touched: the requested transition, the new address and the item plan. New
// lines inherit the updated service type, and the status moves last so that
// every line follows it.
type OrderLifecycle struct {
	reconciler ItemReconciler
}

func NewOrderLifecycle() OrderLifecycle {
	return OrderLifecycle{reconciler: NewItemReconciler()}
}

func (l OrderLifecycle) Update(o *order.Order, update OrderUpdate, stamp order.Stamp) (Outcome, error) {
	if err := o.Validate(); err != nil {
		return Outcome{}, err
	}
	outcome := Outcome{Previous: o.Status()}

	if update.Status != nil {
		if err := o.Status().ValidateTransition(*update.Status); err != nil {
			return outcome, err
		}
	}
	if o.Status().IsTerminal() && update.touchesContent() {
		return outcome, errs.NewIllegalTransitionError("order", o.Status().String(), "modified")
	}

	var address *order.Address
	if update.Address != nil {
		a, err := order.NewAddress(*update.Address)
		if err != nil {
			return outcome, err
		}
		address = &a
	}

	var plan order.ItemPlan
	if update.Items != nil {
		p, err := l.reconciler.Plan(o.Items(), update.Items)
		if err != nil {
			return outcome, err
		}
		plan = p
	}

	if update.ServiceType != nil {
		if err := o.ChangeServiceType(*update.ServiceType, stamp); err != nil {
			return outcome, err
		}
	}
	if address != nil {
		if err := o.ReplaceAddress(*address, stamp); err != nil {
			return outcome, err
		}
	}
	if err := o.ApplyItemPlan(plan, stamp); err != nil {
		return outcome, err
	}
	if update.Status != nil {
		changed, err := o.Transition(*update.Status, stamp)
		if err != nil {
			return outcome, err
		}
		outcome.StatusChanged = changed
	}
	return outcome, nil
}

// Transition is the status-only form of Update.
func (l OrderLifecycle) Transition(o *order.Order, target order.Status, stamp order.Stamp) (Outcome, error) {
	return l.Update(o, OrderUpdate{Status: &target}, stamp)
}
