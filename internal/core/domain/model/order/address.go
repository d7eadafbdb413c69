package order

import (
	"errors"
	"fmt"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// AddressDetails is the raw delivery information supplied with a request.
type AddressDetails struct {
	Name     string
	Mobile   string
	Line1    string
	Line2    string
	Landmark string
	City     string
	State    string
	Pincode  string
}

// Address is the delivery snapshot owned by exactly one order. Later edits to
// the customer's address book never reach it.
type Address struct {
	id       kernel.ID
	name     string
	mobile   kernel.Mobile
	line1    string
	line2    string
	landmark string
	city     string
	state    string
	pincode  string

	guard guard.ConstructorGuard
}

func NewAddress(details AddressDetails) (Address, error) {
	mobile, mobileErr := kernel.NewMobile(details.Mobile)

	a := Address{
		name:     clean(details.Name),
		mobile:   mobile,
		line1:    clean(details.Line1),
		line2:    clean(details.Line2),
		landmark: clean(details.Landmark),
		city:     clean(details.City),
		state:    clean(details.State),
		pincode:  clean(details.Pincode),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		required("address name", a.name),
		mobileErr,
		required("address line1", a.line1),
		required("city", a.city),
		validatePincode(a.pincode),
	); err != nil {
		return Address{}, err
	}

	return a, nil
}

// RestoreAddress rebuilds a stored snapshot.
func RestoreAddress(id kernel.ID, details AddressDetails) (Address, error) {
	a, err := NewAddress(details)
	if err != nil {
		return Address{}, err
	}
	if err = id.Validate(); err != nil {
		return Address{}, err
	}
	a.id = id
	return a, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) ID() kernel.ID         { return a.id }
func (a Address) Name() string          { return a.name }
func (a Address) Mobile() kernel.Mobile { return a.mobile }
func (a Address) Line1() string         { return a.line1 }
func (a Address) Line2() string         { return a.line2 }
func (a Address) Landmark() string      { return a.landmark }
func (a Address) City() string          { return a.city }
func (a Address) State() string         { return a.state }
func (a Address) Pincode() string       { return a.pincode }

// Details returns the snapshot as plain values.
func (a Address) Details() AddressDetails {
	return AddressDetails{
		Name:     a.name,
		Mobile:   a.mobile.String(),
		Line1:    a.line1,
		Line2:    a.line2,
		Landmark: a.landmark,
		City:     a.city,
		State:    a.state,
		Pincode:  a.pincode,
	}
}

func validatePincode(pincode string) error {
	if pincode == "" {
		return errs.NewValueIsRequiredError("pincode")
	}
	for _, r := range pincode {
		if (r < '0' || r > '9') && r != ' ' {
			return errs.NewValueIsInvalidErrorWithCause("pincode", fmt.Errorf("%q is not numeric", pincode))
		}
	}
	return nil
}

func required(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
