package order_test

import (
	"testing"
	"time"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("should canonicalize names", func(t *testing.T) {
		item, err := order.NewItem(order.LineItem{
			Category: "MENS_CLOTHING", Product: "FORMAL_SHIRT", Quantity: 2,
			ServiceType: order.WashIron, Status: order.ItemPending,
		}, stampAt(t, 0))

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.Equal(t, "Men's Clothing", item.Category())
		assert.Equal(t, "Formal Shirt", item.Product())
		assert.Equal(t, order.ItemKey{Category: "Men's Clothing", Product: "Formal Shirt"}, item.Key())
	})

	t.Run("should report all invalid fields", func(t *testing.T) {
		item, err := order.NewItem(order.LineItem{Quantity: 0}, stampAt(t, 0))

		require.Error(t, err)
		assert.Nil(t, item)
		assert.Contains(t, err.Error(), "category name")
		assert.Contains(t, err.Error(), "product name")
		assert.Contains(t, err.Error(), "quantity is invalid")
		assert.Contains(t, err.Error(), "0 is not greater than 0")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should require stamp", func(t *testing.T) {
		_, err := order.NewItem(order.LineItem{
			Category: "A", Product: "B", Quantity: 1,
			ServiceType: order.WashIron, Status: order.ItemPending,
		}, order.Stamp{})

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestItem_ReviseThroughOrder(t *testing.T) {
	t.Run("should move status forward", func(t *testing.T) {
		o := restoredOrder(t, order.InProgress)
		require.NoError(t, o.ReviseItem(21, order.ItemChange{Status: order.ItemCompleted}, stampAt(t, time.Hour)))

		item, _ := o.Item(21)
		assert.Equal(t, order.ItemCompleted, item.Status())
		assert.Equal(t, createdAt.Add(time.Hour), item.Updated().At())
	})

	t.Run("should reject moving a completed line back", func(t *testing.T) {
		o := restoredOrder(t, order.InProgress)
		require.NoError(t, o.ReviseItem(21, order.ItemChange{Status: order.ItemCompleted}, stampAt(t, time.Hour)))

		err := o.ReviseItem(21, order.ItemChange{Status: order.ItemPending}, stampAt(t, 2*time.Hour))

		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("should rename a line into its canonical key", func(t *testing.T) {
		o := restoredOrder(t, order.Pending)

		require.NoError(t, o.ReviseItem(22, order.ItemChange{Product: "BATH_TOWEL"}, stampAt(t, time.Hour)))

		item, _ := o.Item(22)
		assert.Equal(t, "Bath Towel", item.Product())
	})
}

func TestStamp(t *testing.T) {
	_, err := order.NewStamp(time.Time{}, "x")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = order.NewStamp(time.Now(), " ")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.FixedZone("IST", 19800))
	s, err := order.NewStamp(at, "a")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, s.At().Location())
	assert.Nil(t, order.Stamp{}.AtPtr())

	by := "b"
	restored := order.RestoreStamp(s.AtPtr(), &by)
	assert.Equal(t, "b", restored.By())
	assert.True(t, order.RestoreStamp(nil, nil).IsZero())
}
