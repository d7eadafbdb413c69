package services

import (
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
)

// ItemPatch is one requested line of an update. A zero ID asks for a new line.
type ItemPatch struct {
	ID          kernel.ID
	Category    string
	Product     string
	Quantity    int
	ServiceType order.ServiceType
	Status      order.ItemStatus
}

// ItemReconciler computes the set difference between stored lines and the
// lines of an update request.
//
// Business rules:
//   - a patch whose id matches a stored line revises it
//   - a patch without id becomes a new line; new lines are merged by key first
//   - stored lines missing from the request are removed
//   - an id that is not part of the order, or appears twice, is rejected
type ItemReconciler struct {
	merger ItemMerger
}

func NewItemReconciler() ItemReconciler {
	return ItemReconciler{merger: NewItemMerger()}
}

func (r ItemReconciler) Plan(existing []*order.Item, patches []ItemPatch) (order.ItemPlan, error) {
	if len(patches) == 0 {
		return order.ItemPlan{}, errs.NewValueIsRequiredErrorWithCause("items",
			errors.New("an order keeps at least one item"))
	}

	stored := make(map[kernel.ID]*order.Item, len(existing))
	for _, item := range existing {
		stored[item.ID()] = item
	}

	var (
		plan    order.ItemPlan
		fresh   []order.LineItem
		kept    = make(map[kernel.ID]struct{}, len(patches))
		errList []error
	)
	for idx, p := range patches {
		if p.ID.IsZero() {
			line := order.LineItem{
				Category:    p.Category,
				Product:     p.Product,
				Quantity:    p.Quantity,
				ServiceType: p.ServiceType,
				Status:      p.Status,
			}
			if lineErrs := lineErrors(idx, line); len(lineErrs) > 0 {
				errList = append(errList, lineErrs...)
				continue
			}
			fresh = append(fresh, line)
			continue
		}

		param := fmt.Sprintf("items[%d]", idx)
		if _, ok := stored[p.ID]; !ok {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(param,
				fmt.Errorf("item %s does not belong to the order", p.ID)))
			continue
		}
		if _, dup := kept[p.ID]; dup {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(param,
				fmt.Errorf("item %s is listed twice", p.ID)))
			continue
		}
		if p.Quantity < 0 {
			errList = append(errList, errs.NewValueIsOutOfRangeError(param, p.Quantity, 1, "unbounded"))
			continue
		}
		kept[p.ID] = struct{}{}
		plan.Revisions = append(plan.Revisions, order.ItemRevision{
			ID: p.ID,
			Change: order.ItemChange{
				Category:    p.Category,
				Product:     p.Product,
				Quantity:    p.Quantity,
				ServiceType: p.ServiceType,
				Status:      p.Status,
			},
		})
	}
	if err := errors.Join(errList...); err != nil {
		return order.ItemPlan{}, err
	}

	if len(fresh) > 0 {
		merged, err := r.merger.Merge(fresh)
		if err != nil {
			return order.ItemPlan{}, err
		}
		plan.Additions = merged
	}

	for _, item := range existing {
		if _, ok := kept[item.ID()]; !ok {
			plan.Removals = append(plan.Removals, item.ID())
		}
	}
	return plan, nil
}
