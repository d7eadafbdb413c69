package order

import (
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// LineItem is a requested garment line before it becomes part of an order.
// ServiceType and Status may be left unknown to inherit from the order.
type LineItem struct {
	Category    string
	Product     string
	Quantity    int
	ServiceType ServiceType
	Status      ItemStatus
}

// Key returns the merge key of the line.
func (l LineItem) Key() ItemKey {
	return ItemKey{Category: l.Category, Product: l.Product}
}

// ItemKey identifies a line within one order.
type ItemKey struct {
	Category string
	Product  string
}

func (k ItemKey) String() string {
	return k.Category + "/" + k.Product
}

// ItemChange describes an in-place edit. Zero fields are left untouched.
type ItemChange struct {
	Category    string
	Product     string
	Quantity    int
	ServiceType ServiceType
	Status      ItemStatus
}

// Item is a garment line owned by an order.
type Item struct {
	id          kernel.ID
	orderID     kernel.ID
	category    string
	product     string
	quantity    int
	serviceType ServiceType
	status      ItemStatus
	created     Stamp
	updated     Stamp

	guard guard.ConstructorGuard
}

// NewItem validates a line and stamps its creation.
func NewItem(line LineItem, stamp Stamp) (*Item, error) {
	item := &Item{
		serviceType: line.ServiceType,
		status:      line.Status,
		created:     stamp,
		updated:     stamp,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setCategory(line.Category),
		item.setProduct(line.Product),
		item.setQuantity(line.Quantity),
		item.serviceType.Validate(),
		item.status.Validate(),
		requireStamp(stamp),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// ItemSnapshot carries a stored line.
type ItemSnapshot struct {
	ID          kernel.ID
	OrderID     kernel.ID
	Category    string
	Product     string
	Quantity    int
	ServiceType ServiceType
	Status      ItemStatus
	Created     Stamp
	Updated     Stamp
}

func RestoreItem(s ItemSnapshot) (*Item, error) {
	item, err := NewItem(LineItem{
		Category:    s.Category,
		Product:     s.Product,
		Quantity:    s.Quantity,
		ServiceType: s.ServiceType,
		Status:      s.Status,
	}, s.Created)
	if err != nil {
		return nil, err
	}
	if err = s.ID.Validate(); err != nil {
		return nil, err
	}

	item.id = s.ID
	item.orderID = s.OrderID
	if !s.Updated.IsZero() {
		item.updated = s.Updated
	}
	return item, nil
}

func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) ID() kernel.ID            { return i.id }
func (i *Item) OrderID() kernel.ID       { return i.orderID }
func (i *Item) Category() string         { return i.category }
func (i *Item) Product() string          { return i.product }
func (i *Item) Quantity() int            { return i.quantity }
func (i *Item) ServiceType() ServiceType { return i.serviceType }
func (i *Item) Status() ItemStatus       { return i.status }
func (i *Item) Created() Stamp           { return i.created }
func (i *Item) Updated() Stamp           { return i.updated }
func (i *Item) Key() ItemKey             { return ItemKey{Category: i.category, Product: i.product} }

// AssignID records the storage identity. It can only be set once.
func (i *Item) AssignID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if !i.id.IsZero() && i.id != id {
		return errs.NewValueIsInvalidErrorWithCause("item id", fmt.Errorf("already assigned %s", i.id))
	}
	i.id = id
	return nil
}

// revise applies an edit. Validation happens before any field changes.
func (i *Item) revise(change ItemChange, stamp Stamp) error {
	next := *i
	var errList []error
	if change.Category != "" {
		errList = append(errList, next.setCategory(change.Category))
	}
	if change.Product != "" {
		errList = append(errList, next.setProduct(change.Product))
	}
	if change.Quantity != 0 {
		errList = append(errList, next.setQuantity(change.Quantity))
	}
	if change.ServiceType != ServiceUnknown {
		errList = append(errList, change.ServiceType.Validate())
		next.serviceType = change.ServiceType
	}
	if change.Status != ItemUnknown {
		errList = append(errList, i.status.ValidateTransition(change.Status))
		next.status = change.Status
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	next.updated = stamp
	*i = next
	return nil
}

// follow lifts the line to the floor implied by the order status.
// Terminal lines and lines already past the floor are left alone.
func (i *Item) follow(orderStatus Status, stamp Stamp) bool {
	floor, ok := orderStatus.itemFloor()
	if !ok || i.status.IsTerminal() || i.status == floor {
		return false
	}
	if floor != ItemCancelled && itemStatusRank[i.status] >= itemStatusRank[floor] {
		return false
	}
	i.status = floor
	i.updated = stamp
	return true
}

func (i *Item) setCategory(category string) error {
	category = CanonicalCategory(category)
	if category == "" {
		return errs.NewValueIsRequiredError("category name")
	}
	i.category = category
	return nil
}

func (i *Item) setProduct(product string) error {
	product = CanonicalProduct(product)
	if product == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	i.product = product
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func requireStamp(stamp Stamp) error {
	if stamp.IsZero() {
		return errs.NewValueIsRequiredError("stamp")
	}
	return nil
}
