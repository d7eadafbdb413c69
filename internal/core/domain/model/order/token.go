package order

import (
	"fmt"
	"regexp"
	"strings"

	"laundry/internal/pkg/errs"
)

// TokenPrefix starts every order token.
const TokenPrefix = "ORD"

var tokenPattern = regexp.MustCompile(`^ORD\d{8}-[A-Z0-9]{6,16}$`)

// Token is the human-facing order reference, immutable once issued.
type Token struct {
	value string
}

func NewToken(raw string) (Token, error) {
	if !tokenPattern.MatchString(raw) {
		return Token{}, errs.NewValueIsInvalidErrorWithCause("token", fmt.Errorf("%q does not match %s", raw, tokenPattern))
	}
	return Token{value: raw}, nil
}

// RestoreToken accepts any non-blank stored token, including ones issued
// before the current format.
func RestoreToken(raw string) (Token, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Token{}, errs.NewValueIsRequiredError("token")
	}
	return Token{value: raw}, nil
}

func (t Token) String() string {
	return t.value
}

func (t Token) IsZero() bool {
	return t.value == ""
}

func (t Token) Validate() error {
	if t.value == "" {
		return errs.NewValueIsRequiredError("token")
	}
	return nil
}
