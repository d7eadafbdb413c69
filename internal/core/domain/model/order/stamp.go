package order

import (
	"strings"
	"time"

	"laundry/internal/pkg/errs"
)

// Stamp is an audit pair: when something happened and who did it.
type Stamp struct {
	at time.Time
	by string
}

func NewStamp(at time.Time, by string) (Stamp, error) {
	by = strings.TrimSpace(by)
	if at.IsZero() {
		return Stamp{}, errs.NewValueIsRequiredError("stamp time")
	}
	if by == "" {
		return Stamp{}, errs.NewValueIsRequiredError("stamp actor")
	}
	return Stamp{at: at.UTC(), by: by}, nil
}

// RestoreStamp rebuilds an optional stamp from nullable columns.
func RestoreStamp(at *time.Time, by *string) Stamp {
	if at == nil || at.IsZero() {
		return Stamp{}
	}
	s := Stamp{at: at.UTC()}
	if by != nil {
		s.by = *by
	}
	return s
}

func (s Stamp) At() time.Time {
	return s.at
}

func (s Stamp) By() string {
	return s.by
}

func (s Stamp) IsZero() bool {
	return s.at.IsZero()
}

// AtPtr and ByPtr feed nullable columns and JSON fields.
func (s Stamp) AtPtr() *time.Time {
	if s.IsZero() {
		return nil
	}
	at := s.at
	return &at
}

func (s Stamp) ByPtr() *string {
	if s.IsZero() {
		return nil
	}
	by := s.by
	return &by
}
