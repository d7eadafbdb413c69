package services

import (
	"fmt"
	"strings"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
)

// VocabularyKind names the vocabulary an unmapped spelling was found in.
type VocabularyKind string

const (
	VocabularyOrderStatus VocabularyKind = "order_status"
	VocabularyItemStatus  VocabularyKind = "item_status"
	VocabularyServiceType VocabularyKind = "service_type"
)

// UnmappedFunc receives spellings that had to fall back to a default.
type UnmappedFunc func(kind VocabularyKind, raw string)

// StatusNormalizer is the boundary between spelled statuses and the enums.
//
// ToCanonical-style methods are lenient and meant for stored rows: unknown
// input falls back to a default and is reported through the UnmappedFunc.
// Parse-style methods are strict and meant for client input: unknown input is
// a validation error.
type StatusNormalizer struct {
	onUnmapped UnmappedFunc
}

func NewStatusNormalizer(onUnmapped UnmappedFunc) StatusNormalizer {
	if onUnmapped == nil {
		onUnmapped = func(VocabularyKind, string) {}
	}
	return StatusNormalizer{onUnmapped: onUnmapped}
}

func (n StatusNormalizer) ToCanonical(raw string) order.Status {
	s, ok := order.ParseStatus(raw)
	if !ok {
		n.report(VocabularyOrderStatus, raw)
	}
	return s
}

func (n StatusNormalizer) ToExternal(s order.Status) string {
	return s.String()
}

func (n StatusNormalizer) ItemToCanonical(raw string) order.ItemStatus {
	s, ok := order.ParseItemStatus(raw)
	if !ok {
		n.report(VocabularyItemStatus, raw)
	}
	return s
}

func (n StatusNormalizer) ItemToExternal(s order.ItemStatus) string {
	return s.String()
}

func (n StatusNormalizer) ServiceToCanonical(raw string) order.ServiceType {
	s, ok := order.ParseServiceType(raw)
	if !ok && strings.TrimSpace(raw) != "" {
		n.report(VocabularyServiceType, raw)
	}
	return s
}

func (n StatusNormalizer) ServiceToExternal(s order.ServiceType) string {
	return s.String()
}

// ParseStatus accepts any known spelling and rejects the rest.
func (n StatusNormalizer) ParseStatus(raw string) (order.Status, error) {
	if strings.TrimSpace(raw) == "" {
		return order.Unknown, errs.NewValueIsRequiredError("status")
	}
	s, ok := order.ParseStatus(raw)
	if !ok {
		return order.Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", raw))
	}
	return s, nil
}

func (n StatusNormalizer) ParseItemStatus(raw string) (order.ItemStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return order.ItemUnknown, errs.NewValueIsRequiredError("item status")
	}
	s, ok := order.ParseItemStatus(raw)
	if !ok {
		return order.ItemUnknown, errs.NewValueIsInvalidErrorWithCause("item status", fmt.Errorf("%q is not a known item status", raw))
	}
	return s, nil
}

// ParseServiceType treats blank input as the default service.
func (n StatusNormalizer) ParseServiceType(raw string) (order.ServiceType, error) {
	if strings.TrimSpace(raw) == "" {
		return order.DefaultServiceType, nil
	}
	s, ok := order.ParseServiceType(raw)
	if !ok {
		return order.ServiceUnknown, errs.NewValueIsInvalidErrorWithCause("service", fmt.Errorf("%q is not a known service", raw))
	}
	return s, nil
}

// SpellingFilter selects stored rows by their normalized spelling. A row
// matches when its spelling is in Spellings, or, when Known is set, when its
// spelling is outside Known: such rows read back as the fallback value.
type SpellingFilter struct {
	Spellings []string
	Known     []string
}

// IncludesUnmapped reports whether unmapped spellings match the filter.
func (f SpellingFilter) IncludesUnmapped() bool {
	return len(f.Known) > 0
}

// StatusFilter expands a status into every normalized spelling stored rows may
// carry. Filtering by the fallback status also matches unmapped spellings.
func (n StatusNormalizer) StatusFilter(s order.Status) SpellingFilter {
	f := SpellingFilter{Spellings: order.StatusSpellings(s)}
	if s == order.Pending {
		f.Known = order.KnownStatusSpellings()
	}
	return f
}

func (n StatusNormalizer) ServiceFilter(s order.ServiceType) SpellingFilter {
	f := SpellingFilter{Spellings: order.ServiceTypeSpellings(s)}
	if s == order.DefaultServiceType {
		f.Known = order.KnownServiceTypeSpellings()
	}
	return f
}

func (n StatusNormalizer) report(kind VocabularyKind, raw string) {
	n.onUnmapped(kind, raw)
}
