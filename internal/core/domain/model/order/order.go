package order

import (
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of a laundry order. It owns its Address snapshot
// and its Items, and it is the only place where status changes happen.
//
// Order follows these invariants:
//   - token is set at creation and never changes
//   - at least one item, and no two items share a (category, product) pair
//   - status moves only along the lifecycle graph (see Status)
//   - picked, completed, delivered and cancelled stamps are written once and
//     never precede the creation stamp
type Order struct {
	id          kernel.ID
	token       Token
	customerID  kernel.ID
	address     Address
	serviceType ServiceType
	status      Status
	items       []*Item

	// removedItemIDs are stored lines dropped by reconciliation, pending deletion.
	removedItemIDs []kernel.ID

	created   Stamp
	updated   Stamp
	picked    Stamp
	completed Stamp
	delivered Stamp
	cancelled Stamp

	events []Event

	guard guard.ConstructorGuard
}

// NewOrderParams groups the values needed to open an order.
type NewOrderParams struct {
	Token         Token
	CustomerID    kernel.ID
	Address       Address
	ServiceType   ServiceType
	InitialStatus Status
	Items         []LineItem
	Stamp         Stamp
}

// NewOrder builds a fresh order. Lines without a service type inherit the
// order's one and lines without a status start at the status implied by
// InitialStatus. The initial status is Pending or Confirmed.
//
// Example:
//
//	o, err := order.NewOrder(order.NewOrderParams{
//	    Token:         token,
//	    CustomerID:    customerID,
//	    Address:       address,
//	    ServiceType:   order.WashIron,
//	    InitialStatus: order.Pending,
//	    Items:         merged,
//	    Stamp:         stamp,
//	})
func NewOrder(p NewOrderParams) (*Order, error) {
	o := &Order{
		token:       p.Token,
		customerID:  p.CustomerID,
		address:     p.Address,
		serviceType: p.ServiceType,
		status:      p.InitialStatus,
		created:     p.Stamp,
		updated:     p.Stamp,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.Token.Validate(),
		p.CustomerID.Validate(),
		p.Address.Validate(),
		p.ServiceType.Validate(),
		validateInitialStatus(p.InitialStatus),
		requireStamp(p.Stamp),
	); err != nil {
		return nil, err
	}

	items, err := o.buildItems(p.Items, p.Stamp)
	if err != nil {
		return nil, err
	}
	o.items = items

	o.record(EventOrderCreated, Unknown, p.Stamp)
	return o, nil
}

// Snapshot carries a stored order for rehydration.
type Snapshot struct {
	ID          kernel.ID
	Token       string
	CustomerID  kernel.ID
	Address     Address
	ServiceType ServiceType
	Status      Status
	Items       []*Item
	Created     Stamp
	Updated     Stamp
	Picked      Stamp
	Completed   Stamp
	Delivered   Stamp
	Cancelled   Stamp
}

// RestoreOrder rebuilds an order from storage without recording events.
func RestoreOrder(s Snapshot) (*Order, error) {
	token, tokenErr := RestoreToken(s.Token)
	if err := errors.Join(
		s.ID.Validate(),
		tokenErr,
		s.CustomerID.Validate(),
		s.Address.Validate(),
		s.ServiceType.Validate(),
		s.Status.Validate(),
		requireStamp(s.Created),
	); err != nil {
		return nil, err
	}

	for _, item := range s.Items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	updated := s.Updated
	if updated.IsZero() {
		updated = s.Created
	}

	return &Order{
		id:          s.ID,
		token:       token,
		customerID:  s.CustomerID,
		address:     s.Address,
		serviceType: s.ServiceType,
		status:      s.Status,
		items:       s.Items,
		created:     s.Created,
		updated:     updated,
		picked:      s.Picked,
		completed:   s.Completed,
		delivered:   s.Delivered,
		cancelled:   s.Cancelled,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() kernel.ID            { return o.id }
func (o *Order) Token() Token             { return o.token }
func (o *Order) CustomerID() kernel.ID    { return o.customerID }
func (o *Order) Address() Address         { return o.address }
func (o *Order) ServiceType() ServiceType { return o.serviceType }
func (o *Order) Status() Status           { return o.status }
func (o *Order) Created() Stamp           { return o.created }
func (o *Order) Updated() Stamp           { return o.updated }
func (o *Order) Picked() Stamp            { return o.picked }
func (o *Order) Completed() Stamp         { return o.completed }
func (o *Order) Delivered() Stamp         { return o.delivered }
func (o *Order) Cancelled() Stamp         { return o.cancelled }

// Items returns the lines in insertion order. The slice is a copy; the items are not.
func (o *Order) Items() []*Item {
	out := make([]*Item, len(o.items))
	copy(out, o.items)
	return out
}

// Item finds a line by id.
func (o *Order) Item(id kernel.ID) (*Item, error) {
	for _, item := range o.items {
		if item.id == id {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order item", id.String())
}

// RemovedItemIDs lists stored lines dropped since the order was loaded.
func (o *Order) RemovedItemIDs() []kernel.ID {
	out := make([]kernel.ID, len(o.removedItemIDs))
	copy(out, o.removedItemIDs)
	return out
}

// ClearRemovedItemIDs is called by the repository once deletions are stored.
func (o *Order) ClearRemovedItemIDs() {
	o.removedItemIDs = nil
}

// OwnedBy reports whether the order belongs to customerID.
func (o *Order) OwnedBy(customerID kernel.ID) bool {
	return o.customerID == customerID
}

// AssignID records the storage identity of the order and propagates it to its lines.
func (o *Order) AssignID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if !o.id.IsZero() && o.id != id {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("already assigned %s", o.id))
	}
	o.id = id
	for _, item := range o.items {
		item.orderID = id
	}
	return nil
}

// AssignAddressID records the storage identity of the address snapshot.
func (o *Order) AssignAddressID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.address.id = id
	return nil
}

// Transition moves the order to target. It reports false without touching
// anything when the order already has that status. Entering PickedUp,
// Completed, Delivered or Cancelled writes the matching stamp unless it is
// already set, and every non-terminal line is lifted to the status the order
// now implies.
func (o *Order) Transition(target Status, stamp Stamp) (bool, error) {
	if err := o.status.ValidateTransition(target); err != nil {
		return false, err
	}
	if target == o.status {
		return false, nil
	}
	if err := o.checkStamp(stamp); err != nil {
		return false, err
	}

	previous := o.status
	o.status = target

	switch target {
	case PickedUp:
		stampOnce(&o.picked, stamp)
	case Completed:
		stampOnce(&o.completed, stamp)
	case Delivered:
		stampOnce(&o.delivered, stamp)
	case Cancelled:
		stampOnce(&o.cancelled, stamp)
	case Unknown, Pending, Confirmed, InProgress:
	}

	o.cascade(stamp)
	o.updated = stamp
	o.record(EventOrderStatusChanged, previous, stamp)
	return true, nil
}

// ChangeServiceType switches the order-level service. Lines keep their own.
func (o *Order) ChangeServiceType(serviceType ServiceType, stamp Stamp) error {
	if err := errors.Join(serviceType.Validate(), o.checkMutable(), o.checkStamp(stamp)); err != nil {
		return err
	}
	if serviceType == o.serviceType {
		return nil
	}
	o.serviceType = serviceType
	o.updated = stamp
	return nil
}

// ReplaceAddress swaps the delivery snapshot, keeping its storage row.
func (o *Order) ReplaceAddress(address Address, stamp Stamp) error {
	if err := errors.Join(address.Validate(), o.checkMutable(), o.checkStamp(stamp)); err != nil {
		return err
	}
	address.id = o.address.id
	o.address = address
	o.updated = stamp
	return nil
}

// ItemRevision edits the stored line ID.
type ItemRevision struct {
	ID     kernel.ID
	Change ItemChange
}

// ItemPlan is the outcome of diffing requested lines against stored ones.
type ItemPlan struct {
	Revisions []ItemRevision
	Additions []LineItem
	Removals  []kernel.ID
}

func (p ItemPlan) IsEmpty() bool {
	return len(p.Revisions) == 0 && len(p.Additions) == 0 && len(p.Removals) == 0
}

// ApplyItemPlan replaces the line set in one step: either every revision,
// addition and removal applies or the order is left unchanged.
func (o *Order) ApplyItemPlan(plan ItemPlan, stamp Stamp) error {
	if plan.IsEmpty() {
		return nil
	}
	if err := errors.Join(o.checkMutable(), o.checkStamp(stamp)); err != nil {
		return err
	}

	removals := make(map[kernel.ID]struct{}, len(plan.Removals))
	for _, id := range plan.Removals {
		if _, err := o.Item(id); err != nil {
			return err
		}
		removals[id] = struct{}{}
	}

	revisions := make(map[kernel.ID]ItemChange, len(plan.Revisions))
	for _, rev := range plan.Revisions {
		if _, err := o.Item(rev.ID); err != nil {
			return err
		}
		if _, removed := removals[rev.ID]; removed {
			return errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("item %s is both revised and removed", rev.ID))
		}
		revisions[rev.ID] = rev.Change
	}

	next := make([]*Item, 0, len(o.items)+len(plan.Additions))
	for _, item := range o.items {
		if _, removed := removals[item.id]; removed {
			continue
		}
		clone := *item
		if change, ok := revisions[item.id]; ok {
			if err := clone.revise(change, stamp); err != nil {
				if errors.Is(err, errs.ErrIllegalTransition) {
					return fmt.Errorf("item %s: %w", item.id, err)
				}
				return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("item %s", item.id), err)
			}
		}
		next = append(next, &clone)
	}

	if len(plan.Additions) > 0 {
		added, err := o.buildItems(plan.Additions, stamp)
		if err != nil {
			return err
		}
		next = append(next, added...)
	}

	if len(next) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", errors.New("an order keeps at least one item"))
	}
	if err := uniqueKeys(next); err != nil {
		return err
	}

	// Write clones back so callers holding *Item see the edits.
	current := make(map[kernel.ID]*Item, len(o.items))
	for _, item := range o.items {
		current[item.id] = item
	}
	for i, item := range next {
		if item.id.IsZero() {
			continue
		}
		if stored, ok := current[item.id]; ok {
			*stored = *item
			next[i] = stored
		}
	}

	o.items = next
	o.removedItemIDs = append(o.removedItemIDs, plan.Removals...)
	o.cascade(stamp)
	o.updated = stamp
	o.record(EventOrderItemsReconciled, o.status, stamp)
	return nil
}

// ReviseItem edits one line in place.
func (o *Order) ReviseItem(id kernel.ID, change ItemChange, stamp Stamp) error {
	return o.ApplyItemPlan(ItemPlan{Revisions: []ItemRevision{{ID: id, Change: change}}}, stamp)
}

// MarkDeleted records the deletion event. The repository removes the rows.
func (o *Order) MarkDeleted(stamp Stamp) {
	o.record(EventOrderDeleted, o.status, stamp)
}

// Events returns the facts recorded since load, carrying the current identity.
func (o *Order) Events() []Event {
	out := make([]Event, len(o.events))
	for i, e := range o.events {
		e.OrderID = o.id
		e.Token = o.token.String()
		e.CustomerID = o.customerID
		out[i] = e
	}
	return out
}

// ClearEvents drops recorded facts once they are stored in the outbox.
func (o *Order) ClearEvents() {
	o.events = nil
}

func (o *Order) buildItems(lines []LineItem, stamp Stamp) ([]*Item, error) {
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	items := make([]*Item, 0, len(lines))
	var errList []error
	for idx, line := range lines {
		if line.ServiceType == ServiceUnknown {
			line.ServiceType = o.serviceType
		}
		if line.Status == ItemUnknown {
			line.Status = initialItemStatus(o.status)
		}
		item, err := NewItem(line, stamp)
		if err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", idx), err))
			continue
		}
		item.orderID = o.id
		items = append(items, item)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	if err := uniqueKeys(items); err != nil {
		return nil, err
	}
	return items, nil
}

func (o *Order) cascade(stamp Stamp) {
	for _, item := range o.items {
		item.follow(o.status, stamp)
	}
}

func (o *Order) checkMutable() error {
	if o.status.IsTerminal() {
		return errs.NewIllegalTransitionError("order", o.status.String(), "modified")
	}
	return nil
}

// checkStamp keeps audit times from preceding the creation stamp.
func (o *Order) checkStamp(stamp Stamp) error {
	if err := requireStamp(stamp); err != nil {
		return err
	}
	if stamp.At().Before(o.created.At()) {
		return errs.NewValueIsInvalidErrorWithCause("stamp",
			fmt.Errorf("%s is before order creation %s", stamp.At(), o.created.At()))
	}
	return nil
}

func (o *Order) record(t EventType, previous Status, stamp Stamp) {
	o.events = append(o.events, Event{
		Type:           t,
		Status:         o.status,
		PreviousStatus: previous,
		ItemCount:      len(o.items),
		Actor:          stamp.By(),
		OccurredAt:     stamp.At(),
	})
}

func stampOnce(target *Stamp, stamp Stamp) {
	if target.IsZero() {
		*target = stamp
	}
}

func uniqueKeys(items []*Item) error {
	seen := make(map[ItemKey]struct{}, len(items))
	for _, item := range items {
		key := item.Key()
		if _, dup := seen[key]; dup {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("duplicate line %s", key))
		}
		seen[key] = struct{}{}
	}
	return nil
}

func validateInitialStatus(s Status) error {
	if s != Pending && s != Confirmed {
		return errs.NewValueIsInvalidErrorWithCause("initial status",
			fmt.Errorf("%s is not a valid initial status", s))
	}
	return nil
}
