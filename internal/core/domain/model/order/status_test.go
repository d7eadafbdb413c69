package order_test

import (
	"testing"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_ValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    order.Status
		to      order.Status
		allowed bool
	}{
		{"pending to confirmed", order.Pending, order.Confirmed, true},
		{"pending skips to in progress", order.Pending, order.InProgress, true},
		{"confirmed to picked up", order.Confirmed, order.PickedUp, true},
		{"in progress to completed", order.InProgress, order.Completed, true},
		{"completed to delivered", order.Completed, order.Delivered, true},
		{"pending to cancelled", order.Pending, order.Cancelled, true},
		{"in progress to cancelled", order.InProgress, order.Cancelled, true},
		{"same status is allowed", order.Confirmed, order.Confirmed, true},
		{"completed back to pending", order.Completed, order.Pending, false},
		{"completed to cancelled", order.Completed, order.Cancelled, false},
		{"picked up back to confirmed", order.PickedUp, order.Confirmed, false},
		{"cancelled to pending", order.Cancelled, order.Pending, false},
		{"delivered to cancelled", order.Delivered, order.Cancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.from.ValidateTransition(tt.to)

			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrIllegalTransition)
		})
	}

	t.Run("should reject unknown target as invalid value", func(t *testing.T) {
		err := order.Pending.ValidateTransition(order.Unknown)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_AllowedTransitions(t *testing.T) {
	assert.Equal(t, []order.Status{order.Delivered}, order.Completed.AllowedTransitions())
	assert.Empty(t, order.Cancelled.AllowedTransitions())
	assert.Empty(t, order.Delivered.AllowedTransitions())
	assert.Equal(t,
		[]order.Status{order.Confirmed, order.PickedUp, order.InProgress, order.Completed, order.Delivered, order.Cancelled},
		order.Pending.AllowedTransitions())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "picked_up", order.PickedUp.String())
	assert.Equal(t, "in_progress", order.InProgress.String())
	assert.Equal(t, "unknown", order.Status(42).String())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Completed.IsTerminal())
}

func TestItemStatus_ValidateTransition(t *testing.T) {
	assert.NoError(t, order.ItemPending.ValidateTransition(order.ItemInProgress))
	assert.NoError(t, order.ItemInProgress.ValidateTransition(order.ItemRejected))
	assert.ErrorIs(t, order.ItemInProgress.ValidateTransition(order.ItemPending), errs.ErrIllegalTransition)
	assert.ErrorIs(t, order.ItemCompleted.ValidateTransition(order.ItemCancelled), errs.ErrIllegalTransition)
}
