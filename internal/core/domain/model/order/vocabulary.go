package order

import (
	"sort"
	"strings"
)

// The tables below are the single source of truth for every spelling that
// clients or stored rows have used. Keys are in normalized form (see normalizeKey).

var statusSpellings = map[string]Status{
	"pending":     Pending,
	"confirmed":   Confirmed,
	"picked_up":   PickedUp,
	"picked":      PickedUp,
	"pickedup":    PickedUp,
	"in_progress": InProgress,
	"inprogress":  InProgress,
	"processing":  InProgress,
	"processed":   InProgress,
	"ready":       InProgress,
	"completed":   Completed,
	"complete":    Completed,
	"delivered":   Delivered,
	"cancelled":   Cancelled,
	"canceled":    Cancelled,
}

var itemStatusSpellings = map[string]ItemStatus{
	"pending":     ItemPending,
	"confirmed":   ItemConfirmed,
	"in_progress": ItemInProgress,
	"inprogress":  ItemInProgress,
	"processing":  ItemInProgress,
	"processed":   ItemInProgress,
	"washed":      ItemInProgress,
	"ironed":      ItemInProgress,
	"ready":       ItemInProgress,
	"picked":      ItemInProgress,
	"picked_up":   ItemInProgress,
	"completed":   ItemCompleted,
	"complete":    ItemCompleted,
	"delivered":   ItemCompleted,
	"cancelled":   ItemCancelled,
	"canceled":    ItemCancelled,
	"rejected":    ItemRejected,
}

var serviceSpellings = map[string]ServiceType{
	"wash_iron":     WashIron,
	"washiron":      WashIron,
	"wash_and_iron": WashIron,
	"dry_cleaning":  DryCleaning,
	"drycleaning":   DryCleaning,
	"dry_clean":     DryCleaning,
	"wash_only":     WashOnly,
	"washonly":      WashOnly,
	"iron_only":     IronOnly,
	"irononly":      IronOnly,
}

// ParseStatus maps any known spelling to its canonical status. Unknown input
// yields Pending and false.
func ParseStatus(raw string) (Status, bool) {
	if s, ok := statusSpellings[normalizeKey(raw)]; ok {
		return s, true
	}
	return Pending, false
}

// ParseItemStatus maps any known spelling to its canonical item status.
// Unknown input yields ItemPending and false.
func ParseItemStatus(raw string) (ItemStatus, bool) {
	if s, ok := itemStatusSpellings[normalizeKey(raw)]; ok {
		return s, true
	}
	return ItemPending, false
}

// ParseServiceType maps any known spelling to its canonical service type.
// Unknown input yields DefaultServiceType and false.
func ParseServiceType(raw string) (ServiceType, bool) {
	if s, ok := serviceSpellings[normalizeKey(raw)]; ok {
		return s, true
	}
	return DefaultServiceType, false
}

// StatusSpellings returns every normalized spelling that maps to s, sorted.
// Used to match historical rows when filtering by a canonical status.
func StatusSpellings(s Status) []string {
	return spellingsOf(statusSpellings, s)
}

// ItemStatusSpellings returns every normalized spelling that maps to s, sorted.
func ItemStatusSpellings(s ItemStatus) []string {
	return spellingsOf(itemStatusSpellings, s)
}

// ServiceTypeSpellings returns every normalized spelling that maps to s, sorted.
func ServiceTypeSpellings(s ServiceType) []string {
	return spellingsOf(serviceSpellings, s)
}

// KnownStatusSpellings returns every normalized order status spelling, sorted.
func KnownStatusSpellings() []string {
	return keysOf(statusSpellings)
}

// KnownServiceTypeSpellings returns every normalized service spelling, sorted.
func KnownServiceTypeSpellings() []string {
	return keysOf(serviceSpellings)
}

func keysOf[T any](table map[string]T) []string {
	out := make([]string, 0, len(table))
	for spelling := range table {
		out = append(out, spelling)
	}
	sort.Strings(out)
	return out
}

func spellingsOf[T comparable](table map[string]T, target T) []string {
	out := make([]string, 0, 4)
	for spelling, value := range table {
		if value == target {
			out = append(out, spelling)
		}
	}
	sort.Strings(out)
	return out
}

// normalizeKey lower-cases and folds separators so that "Picked-Up",
// "PICKED UP" and "picked_up" share one key.
func normalizeKey(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	return strings.NewReplacer("-", "_", " ", "_").Replace(key)
}
