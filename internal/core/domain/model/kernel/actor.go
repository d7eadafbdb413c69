package kernel

import (
	"errors"
	"fmt"
	"strings"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Role is the access level of an authenticated actor.
type Role int

const (
	RoleUnknown Role = iota
	RoleCustomer
	RoleStaff
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleCustomer: "customer",
	RoleStaff:    "staff",
	RoleAdmin:    "admin",
}

// ParseRole accepts the role names case-insensitively. "user" is an alias of customer.
func ParseRole(s string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "user" {
		return RoleCustomer, nil
	}
	for role, name := range roleNames {
		if name == normalized {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Actor is the authenticated principal issuing a command.
type Actor struct {
	id    ID
	role  Role
	name  string
	email string

	guard guard.ConstructorGuard
}

func NewActor(id ID, role Role, name, email string) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:    id,
		role:  role,
		name:  strings.TrimSpace(name),
		email: strings.TrimSpace(email),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() ID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) Name() string {
	return a.name
}

func (a Actor) Email() string {
	return a.email
}

// IsElevated reports staff or admin access.
func (a Actor) IsElevated() bool {
	return a.role == RoleStaff || a.role == RoleAdmin
}

// Owns reports whether the actor is the customer identified by customerID.
func (a Actor) Owns(customerID ID) bool {
	return a.role == RoleCustomer && a.id == customerID
}

// AuditName is the value written into created_by/updated_by style columns.
func (a Actor) AuditName() string {
	switch {
	case a.email != "":
		return a.email
	case a.name != "":
		return a.name
	default:
		return fmt.Sprintf("%s:%d", a.role, a.id)
	}
}
