package kernel

import (
	"fmt"
	"strings"

	"laundry/internal/pkg/errs"
)

const (
	minMobileDigits = 7
	maxMobileDigits = 15
)

// Mobile is a phone number reduced to digits with an optional leading "+".
// Customers are looked up by it, so two spellings of the same number compare equal.
type Mobile struct {
	value string
}

func NewMobile(raw string) (Mobile, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Mobile{}, errs.NewValueIsRequiredError("mobile")
	}

	var b strings.Builder
	digits := 0
	for i, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			digits++
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return Mobile{}, errs.NewValueIsInvalidErrorWithCause("mobile", fmt.Errorf("unexpected character %q", r))
		}
	}

	if digits < minMobileDigits || digits > maxMobileDigits {
		return Mobile{}, errs.NewValueIsOutOfRangeError("mobile digits", digits, minMobileDigits, maxMobileDigits)
	}

	return Mobile{value: b.String()}, nil
}

// MustNewMobile panics on invalid input. Intended for tests and fixtures.
func MustNewMobile(raw string) Mobile {
	m, err := NewMobile(raw)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Mobile) String() string {
	return m.value
}

func (m Mobile) IsZero() bool {
	return m.value == ""
}

func (m Mobile) Validate() error {
	if m.value == "" {
		return errs.NewValueIsRequiredError("mobile")
	}
	return nil
}
