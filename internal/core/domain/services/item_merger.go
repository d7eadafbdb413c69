package services

import (
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
)

// ItemMerger folds requested lines that share a (category, product) pair.
//
// Business rules:
//   - every line needs a category, a product and a positive quantity
//   - names are compared in their canonical display form
//   - the first occurrence of a key keeps its service type and status, later
//     ones only contribute their quantity
//   - output keeps first-seen order
type ItemMerger struct{}

func NewItemMerger() ItemMerger {
	return ItemMerger{}
}

// Validate checks every line and reports each offending index.
func (ItemMerger) Validate(lines []order.LineItem) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	var errList []error
	for idx, line := range lines {
		errList = append(errList, lineErrors(idx, line)...)
	}
	return errors.Join(errList...)
}

// lineErrors validates one line; idx is its position in the request.
func lineErrors(idx int, line order.LineItem) []error {
	param := fmt.Sprintf("items[%d]", idx)
	var errList []error
	if order.CanonicalCategory(line.Category) == "" {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause(param, errors.New("category name is empty")))
	}
	if order.CanonicalProduct(line.Product) == "" {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause(param, errors.New("product name is empty")))
	}
	if line.Quantity <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeErrorWithCause(param, line.Quantity, 1, "unbounded",
			errors.New("quantity must be positive")))
	}
	return errList
}

// Merge validates lines and returns one line per key.
//
// Example:
//
//	merged, _ := NewItemMerger().Merge([]order.LineItem{
//	    {Category: "A", Product: "B", Quantity: 2},
//	    {Category: "A", Product: "B", Quantity: 3},
//	    {Category: "C", Product: "D", Quantity: 1},
//	})
//	// merged: (A, B, 5), (C, D, 1)
func (m ItemMerger) Merge(lines []order.LineItem) ([]order.LineItem, error) {
	if err := m.Validate(lines); err != nil {
		return nil, err
	}

	merged := make([]order.LineItem, 0, len(lines))
	index := make(map[order.ItemKey]int, len(lines))
	for _, line := range lines {
		line.Category = order.CanonicalCategory(line.Category)
		line.Product = order.CanonicalProduct(line.Product)

		if pos, ok := index[line.Key()]; ok {
			merged[pos].Quantity += line.Quantity
			continue
		}
		index[line.Key()] = len(merged)
		merged = append(merged, line)
	}
	return merged, nil
}
