package services

import (
	"context"
	"errors"
	"strings"

	"laundry/internal/core/domain/model/customer"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
)

// CustomerDirectory is the part of the user store that order creation needs.
// FindActiveByMobile returns an ObjectNotFoundError when nobody matches.
type CustomerDirectory interface {
	Get(ctx context.Context, id kernel.ID) (*customer.Customer, error)
	FindActiveByMobile(ctx context.Context, mobile kernel.Mobile) (*customer.Customer, error)
	Add(ctx context.Context, c *customer.Customer) error
}

// CustomerHint names the customer an order is placed for.
type CustomerHint struct {
	Name   string
	Mobile string
}

func (h *CustomerHint) isEmpty() bool {
	return h == nil || (strings.TrimSpace(h.Name) == "" && strings.TrimSpace(h.Mobile) == "")
}

// Resolution is the outcome of CustomerResolver.Resolve.
type Resolution struct {
	Customer      *customer.Customer
	InitialStatus order.Status
	Created       bool
}

// HashFunc turns a generated guest password into a storable hash.
type HashFunc func(password string) (string, error)

// BcryptHash is the default HashFunc.
func BcryptHash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CustomerResolver decides whom an order belongs to.
//
// Paths:
//   - customer actor: the order is theirs and starts Pending; a hint is ignored
//   - staff or admin actor: the hint is required, the customer is reused by
//     mobile or created, and the order starts Confirmed
//   - no actor (guest): same as staff but the order starts Pending
//
// Name and mobile are validated before the directory is touched.
type CustomerResolver struct {
	hash HashFunc
}

func NewCustomerResolver(hash HashFunc) CustomerResolver {
	if hash == nil {
		hash = BcryptHash
	}
	return CustomerResolver{hash: hash}
}

func (r CustomerResolver) Resolve(
	ctx context.Context,
	directory CustomerDirectory,
	actor *kernel.Actor,
	hint *CustomerHint,
) (Resolution, error) {
	if actor != nil {
		if err := actor.Validate(); err != nil {
			return Resolution{}, err
		}
		if actor.Role() == kernel.RoleCustomer {
			return r.self(ctx, directory, *actor)
		}
		if !actor.IsElevated() {
			return Resolution{}, errs.NewForbiddenError("create order")
		}
	}

	if hint.isEmpty() {
		return Resolution{}, errs.NewValueIsRequiredError("customer name and mobile")
	}
	name := strings.Join(strings.Fields(hint.Name), " ")
	mobile, mobileErr := kernel.NewMobile(hint.Mobile)
	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("customer name")
	}
	if err := errors.Join(nameErr, mobileErr); err != nil {
		return Resolution{}, err
	}

	initial := order.Pending
	if actor != nil {
		initial = order.Confirmed
	}

	existing, err := directory.FindActiveByMobile(ctx, mobile)
	switch {
	case err == nil:
		return Resolution{Customer: existing, InitialStatus: initial}, nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return Resolution{}, err
	}

	created, err := r.newGuest(name, mobile)
	if err != nil {
		return Resolution{}, err
	}
	if err = directory.Add(ctx, created); err != nil {
		return Resolution{}, err
	}
	return Resolution{Customer: created, InitialStatus: initial, Created: true}, nil
}

func (r CustomerResolver) self(ctx context.Context, directory CustomerDirectory, actor kernel.Actor) (Resolution, error) {
	c, err := directory.Get(ctx, actor.ID())
	if err != nil {
		return Resolution{}, err
	}
	if !c.IsActive() {
		return Resolution{}, errs.NewForbiddenErrorWithCause("create order", errors.New("customer account is not active"))
	}
	return Resolution{Customer: c, InitialStatus: order.Pending}, nil
}

// newGuest creates a customer whose password nobody knows; they sign in via OTP later.
func (r CustomerResolver) newGuest(name string, mobile kernel.Mobile) (*customer.Customer, error) {
	hash, err := r.hash(ulid.Make().String())
	if err != nil {
		return nil, err
	}
	return customer.NewGuestCustomer(name, mobile, hash)
}
