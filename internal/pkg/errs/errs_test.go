package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	err := errs.NewObjectNotFoundError("order", 42)

	assert.Equal(t, "order", err.ParamName)
	assert.Equal(t, "object not found: 42", err.Error())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	withCause := errs.NewObjectNotFoundErrorWithCause("customer", "9000000001", errors.New("no rows"))
	assert.Equal(t,
		"object not found: param is: customer, ID is: 9000000001 (cause: no rows)",
		withCause.Error())
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "required",
			err:      errs.NewValueIsRequiredError("items"),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: items",
		},
		{
			name:     "required with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("customer mobile", errors.New("guest order")),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: customer mobile (cause: guest order)",
		},
		{
			name:     "invalid",
			err:      errs.NewValueIsInvalidError("pincode"),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: pincode",
		},
		{
			name:     "invalid with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("status", errors.New(`"lost" is not a known status`)),
			sentinel: errs.ErrValueIsInvalid,
			message:  `value is invalid: status (cause: "lost" is not a known status)`,
		},
		{
			name:     "out of range",
			err:      errs.NewValueIsOutOfRangeError("limit", 500, 1, 200),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is out of range: 500 is limit, min value is 1, max value is 200",
		},
		{
			name:     "out of range with cause",
			err:      errs.NewValueIsOutOfRangeErrorWithCause("quantity", 0, 1, 999, errors.New("items[2]")),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is out of range: 0 is quantity, min value is 1, max value is 999 (cause: items[2])",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
			assert.True(t, errs.IsValidation(tt.err))
			assert.True(t, errs.IsValidation(fmt.Errorf("create order: %w", tt.err)))
		})
	}
}

func TestErrorMessagesAreSingleLine(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("product", "Formal\nShirt", 1, 255)

	assert.Contains(t, err.Error(), "Formal Shirt")
	assert.NotContains(t, err.Error(), "\n")
}

func TestForbiddenError(t *testing.T) {
	err := errs.NewForbiddenError("view order")

	assert.Equal(t, "access is forbidden: view order", err.Error())
	require.ErrorIs(t, err, errs.ErrForbidden)

	withCause := errs.NewForbiddenErrorWithCause("delete order", errors.New("not the owner"))
	assert.Equal(t, "access is forbidden: delete order (cause: not the owner)", withCause.Error())
}

func TestUnauthorizedError(t *testing.T) {
	assert.Equal(t, "authentication is required", errs.NewUnauthorizedError(nil).Error())
	assert.Equal(t,
		"authentication is required (cause: token is expired)",
		errs.NewUnauthorizedError(errors.New("token is expired")).Error())
	require.ErrorIs(t, errs.NewUnauthorizedError(nil), errs.ErrUnauthorized)
}

func TestIllegalTransitionError(t *testing.T) {
	err := errs.NewIllegalTransitionError("order", "completed", "pending")

	assert.Equal(t, "transition is illegal: order cannot move from completed to pending", err.Error())
	require.ErrorIs(t, err, errs.ErrIllegalTransition)
	assert.False(t, errs.IsValidation(err))
}

func TestConflictError(t *testing.T) {
	err := errs.NewConflictError("token", errors.New("duplicate"))

	assert.Equal(t, "state conflict: token (cause: duplicate)", err.Error())
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestPersistenceError(t *testing.T) {
	t.Run("exposes sentinel and cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewPersistenceError("create order", cause)

		assert.Equal(t, "persistence failure: create order (cause: connection reset)", err.Error())
		require.ErrorIs(t, err, errs.ErrPersistenceFailure)
		require.ErrorIs(t, err, cause)
	})

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewPersistenceError("commit", nil)

		assert.Equal(t, "persistence failure: commit", err.Error())
		require.ErrorIs(t, err, errs.ErrPersistenceFailure)
	})
}

func TestIsValidation(t *testing.T) {
	assert.True(t, errs.IsValidation(errs.NewValueIsRequiredError("items")))
	assert.True(t, errs.IsValidation(errs.NewValueIsInvalidError("quantity")))
	assert.True(t, errs.IsValidation(errors.Join(errs.NewValueIsOutOfRangeError("limit", 500, 1, 200))))
	assert.False(t, errs.IsValidation(errs.NewObjectNotFoundError("order", "1")))
	assert.False(t, errs.IsValidation(nil))
}
