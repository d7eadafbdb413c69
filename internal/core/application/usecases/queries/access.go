package queries

import (
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// EnsureCanView allows staff and admins everything and customers their own orders.
func EnsureCanView(actor kernel.Actor, customerID kernel.ID) error {
	if err := actor.Validate(); err != nil {
		return errs.NewUnauthorizedError(err)
	}
	if actor.IsElevated() || actor.Owns(customerID) {
		return nil
	}
	return errs.NewForbiddenError("view order")
}
