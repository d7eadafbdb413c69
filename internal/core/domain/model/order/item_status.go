package order

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// ItemStatus is the canonical state of a single garment line.
type ItemStatus int

const (
	ItemUnknown ItemStatus = iota
	ItemPending
	ItemConfirmed
	ItemInProgress
	ItemCompleted
	ItemCancelled
	ItemRejected
)

var itemStatusExternal = map[ItemStatus]string{
	ItemPending:    "pending",
	ItemConfirmed:  "confirmed",
	ItemInProgress: "in_progress",
	ItemCompleted:  "completed",
	ItemCancelled:  "cancelled",
	ItemRejected:   "rejected",
}

var itemStatusRank = map[ItemStatus]int{
	ItemPending:    1,
	ItemConfirmed:  2,
	ItemInProgress: 3,
	ItemCompleted:  4,
}

func ItemStatuses() []ItemStatus {
	return []ItemStatus{ItemPending, ItemConfirmed, ItemInProgress, ItemCompleted, ItemCancelled, ItemRejected}
}

func (s ItemStatus) Validate() error {
	if _, ok := itemStatusExternal[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("item status is invalid", fmt.Errorf("%d is not a valid item status", s))
	}
	return nil
}

func (s ItemStatus) String() string {
	if str, ok := itemStatusExternal[s]; ok {
		return str
	}
	return "unknown"
}

func (s ItemStatus) IsTerminal() bool {
	return s == ItemCompleted || s == ItemCancelled || s == ItemRejected
}

// ValidateTransition allows forward moves and moves into cancelled or rejected
// from any non-terminal state.
func (s ItemStatus) ValidateTransition(target ItemStatus) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if s == target {
		return nil
	}
	if s.IsTerminal() {
		return errs.NewIllegalTransitionError("item", s.String(), target.String())
	}
	if target == ItemCancelled || target == ItemRejected || itemStatusRank[target] > itemStatusRank[s] {
		return nil
	}
	return errs.NewIllegalTransitionError("item", s.String(), target.String())
}

// initialItemStatus is the status new lines get when the request does not set one.
func initialItemStatus(orderStatus Status) ItemStatus {
	if floor, ok := orderStatus.itemFloor(); ok {
		return floor
	}
	return ItemPending
}
