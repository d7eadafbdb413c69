package queries

import (
	"errors"
	"math"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// OrderFilter narrows a listing. Nil fields do not filter. Limit 0 means
// DefaultListLimit.
type OrderFilter struct {
	Status     *order.Status
	Service    *order.ServiceType
	CustomerID *kernel.ID
	Search     string
	Skip       int
	Limit      int
}

type ListOrdersQuery struct {
	actor  kernel.Actor
	filter OrderFilter

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(actor kernel.Actor, filter OrderFilter) (ListOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListOrdersQuery{}, errs.NewUnauthorizedError(err)
	}

	var problems []error
	if filter.Skip < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("skip", filter.Skip, 0, math.MaxInt32))
	}
	if filter.Limit == 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit < 1 || filter.Limit > MaxListLimit {
		problems = append(problems, errs.NewValueIsOutOfRangeError("limit", filter.Limit, 1, MaxListLimit))
	}
	if filter.Status != nil {
		problems = append(problems, filter.Status.Validate())
	}
	if filter.Service != nil {
		problems = append(problems, filter.Service.Validate())
	}
	if filter.CustomerID != nil {
		problems = append(problems, filter.CustomerID.Validate())
	}
	if err := errors.Join(problems...); err != nil {
		return ListOrdersQuery{}, err
	}
	filter.Search = strings.TrimSpace(filter.Search)

	// Customers only ever see their own orders, whatever they ask for.
	if !actor.IsElevated() {
		own := actor.ID()
		filter.CustomerID = &own
		filter.Search = ""
	}

	return ListOrdersQuery{actor: actor, filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() kernel.Actor { return q.actor }
func (q ListOrdersQuery) Filter() OrderFilter { return q.filter }
