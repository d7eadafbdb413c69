// Package customer holds the slice of the user directory that order creation
// needs: who the customer is, how to reach them and whether they may order.
package customer

import (
	"errors"
	"fmt"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"

	"github.com/oklog/ulid/v2"
)

// PlaceholderEmailDomain is used for customers created without an email.
const PlaceholderEmailDomain = "laundry.customer.com"

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewGuestCustomer constructor")

// Status is the account state. Customers are never deleted, only deactivated.
type Status int

const (
	StatusUnknown Status = iota
	StatusActive
	StatusInactive
	StatusSuspended
)

var statusNames = map[Status]string{
	StatusActive:    "active",
	StatusInactive:  "inactive",
	StatusSuspended: "suspended",
}

func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for status, name := range statusNames {
		if name == normalized {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("customer status", fmt.Errorf("%q is not a known status", s))
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("customer status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Customer is an entry of the user directory as seen by ordering.
type Customer struct {
	id           kernel.ID
	name         string
	mobile       kernel.Mobile
	email        string
	passwordHash string
	role         kernel.Role
	status       Status

	guard guard.ConstructorGuard
}

// NewGuestCustomer creates an active customer for a mobile number seen for the
// first time. It gets a placeholder email and the supplied password hash.
func NewGuestCustomer(name string, mobile kernel.Mobile, passwordHash string) (*Customer, error) {
	name = strings.Join(strings.Fields(name), " ")

	var errList []error
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("customer name"))
	}
	if mobile.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("customer mobile"))
	}
	if passwordHash == "" {
		errList = append(errList, errs.NewValueIsRequiredError("password hash"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Customer{
		name:         name,
		mobile:       mobile,
		email:        PlaceholderEmail(mobile),
		passwordHash: passwordHash,
		role:         kernel.RoleCustomer,
		status:       StatusActive,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// PlaceholderEmail builds a unique address of the form <mobile>.<ulid>@laundry.customer.com.
func PlaceholderEmail(mobile kernel.Mobile) string {
	local := strings.TrimPrefix(mobile.String(), "+")
	return fmt.Sprintf("%s.%s@%s", local, strings.ToLower(ulid.Make().String()), PlaceholderEmailDomain)
}

// Snapshot carries a stored customer.
type Snapshot struct {
	ID           kernel.ID
	Name         string
	Mobile       string
	Email        string
	PasswordHash string
	Role         kernel.Role
	Status       Status
}

func RestoreCustomer(s Snapshot) (*Customer, error) {
	mobile, mobileErr := kernel.NewMobile(s.Mobile)
	if err := errors.Join(s.ID.Validate(), mobileErr, s.Role.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}
	return &Customer{
		id:           s.ID,
		name:         s.Name,
		mobile:       mobile,
		email:        s.Email,
		passwordHash: s.PasswordHash,
		role:         s.Role,
		status:       s.Status,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.ID         { return c.id }
func (c *Customer) Name() string          { return c.name }
func (c *Customer) Mobile() kernel.Mobile { return c.mobile }
func (c *Customer) Email() string         { return c.email }
func (c *Customer) PasswordHash() string  { return c.passwordHash }
func (c *Customer) Role() kernel.Role     { return c.role }
func (c *Customer) Status() Status        { return c.status }
func (c *Customer) IsActive() bool        { return c.status == StatusActive }

// AssignID records the storage identity once.
func (c *Customer) AssignID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if !c.id.IsZero() && c.id != id {
		return errs.NewValueIsInvalidErrorWithCause("customer id", fmt.Errorf("already assigned %s", c.id))
	}
	c.id = id
	return nil
}

// Deactivate takes the customer out of mobile lookups. Their orders stay.
func (c *Customer) Deactivate() {
	c.status = StatusInactive
}
