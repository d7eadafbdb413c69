package ports

import (
	"context"

	"laundry/internal/core/domain/model/customer"
	"laundry/internal/core/domain/model/kernel"
)

// CustomerRepository is the customer directory as seen by ordering.
type CustomerRepository interface {
	Get(ctx context.Context, id kernel.ID) (*customer.Customer, error)

	// FindActiveByMobile returns ObjectNotFoundError when no active customer uses mobile.
	FindActiveByMobile(ctx context.Context, mobile kernel.Mobile) (*customer.Customer, error)

	// Add inserts the customer and assigns its id.
	Add(ctx context.Context, c *customer.Customer) error
}
