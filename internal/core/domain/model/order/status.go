package order

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// Status is the canonical order lifecycle state.
//
// State transitions:
//
//	Pending ──> Confirmed ──> PickedUp ──> InProgress ──> Completed ──> Delivered
//	   │            │            │             │
//	   └────────────┴────────────┴─────────────┴──────> Cancelled
//
// Forward moves may skip states. Cancelled and Delivered are final; Completed
// only accepts the delivery step.
type Status int

const (
	Unknown Status = iota
	Pending
	Confirmed
	PickedUp
	InProgress
	Completed
	Delivered
	Cancelled
)

// statusExternal is the wire and storage spelling of each canonical status.
var statusExternal = map[Status]string{
	Pending:    "pending",
	Confirmed:  "confirmed",
	PickedUp:   "picked_up",
	InProgress: "in_progress",
	Completed:  "completed",
	Delivered:  "delivered",
	Cancelled:  "cancelled",
}

// statusRank orders the forward path. Cancelled sits outside of it.
var statusRank = map[Status]int{
	Pending:    1,
	Confirmed:  2,
	PickedUp:   3,
	InProgress: 4,
	Completed:  5,
	Delivered:  6,
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Confirmed, PickedUp, InProgress, Completed, Delivered, Cancelled}
}

func (s Status) Validate() error {
	if _, ok := statusExternal[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the external spelling, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := statusExternal[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports states that accept no further transition.
func (s Status) IsTerminal() bool {
	return s == Cancelled || s == Delivered
}

// ValidateTransition checks whether moving to target is legal. Moving to the
// current status is legal and means "nothing to do".
func (s Status) ValidateTransition(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if s == target {
		return nil
	}

	illegal := errs.NewIllegalTransitionError("order", s.String(), target.String())
	switch {
	case s.IsTerminal():
		return illegal
	case s == Completed:
		if target == Delivered {
			return nil
		}
		return illegal
	case target == Cancelled:
		return nil
	case statusRank[target] > statusRank[s]:
		return nil
	default:
		return illegal
	}
}

// AllowedTransitions lists the statuses reachable from s in one step.
func (s Status) AllowedTransitions() []Status {
	allowed := make([]Status, 0, len(statusExternal))
	for _, target := range Statuses() {
		if target != s && s.ValidateTransition(target) == nil {
			allowed = append(allowed, target)
		}
	}
	return allowed
}

// itemFloor is the least item status implied by the order being in s.
func (s Status) itemFloor() (ItemStatus, bool) {
	switch s {
	case Confirmed:
		return ItemConfirmed, true
	case PickedUp, InProgress:
		return ItemInProgress, true
	case Completed, Delivered:
		return ItemCompleted, true
	case Cancelled:
		return ItemCancelled, true
	default:
		return ItemUnknown, false
	}
}
