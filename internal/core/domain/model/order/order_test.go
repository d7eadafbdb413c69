package order_test

import (
	"testing"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

func stampAt(t *testing.T, offset time.Duration) order.Stamp {
	t.Helper()
	s, err := order.NewStamp(createdAt.Add(offset), "staff@laundry.test")
	require.NoError(t, err)
	return s
}

func newTestOrder(t *testing.T, initial order.Status, lines ...order.LineItem) *order.Order {
	t.Helper()
	if len(lines) == 0 {
		lines = []order.LineItem{{Category: "Shirts", Product: "Formal Shirt", Quantity: 2}}
	}
	address, err := order.NewAddress(validAddressDetails())
	require.NoError(t, err)
	token, err := order.NewToken("ORD20240115-AB12CD")
	require.NoError(t, err)

	o, err := order.NewOrder(order.NewOrderParams{
		Token:         token,
		CustomerID:    kernel.ID(11),
		Address:       address,
		ServiceType:   order.WashIron,
		InitialStatus: initial,
		Items:         lines,
		Stamp:         stampAt(t, 0),
	})
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create order with defaults filled into lines", func(t *testing.T) {
		o := newTestOrder(t, order.Pending,
			order.LineItem{Category: "Shirts", Product: "Formal Shirt", Quantity: 2},
			order.LineItem{Category: "Sarees", Product: "Silk", Quantity: 1, ServiceType: order.DryCleaning},
		)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "ORD20240115-AB12CD", o.Token().String())
		require.Len(t, o.Items(), 2)
		assert.Equal(t, order.WashIron, o.Items()[0].ServiceType())
		assert.Equal(t, order.ItemPending, o.Items()[0].Status())
		assert.Equal(t, order.DryCleaning, o.Items()[1].ServiceType())
		assert.Equal(t, createdAt, o.Created().At())
		assert.True(t, o.Picked().IsZero())

		events := o.Events()
		require.Len(t, events, 1)
		assert.Equal(t, order.EventOrderCreated, events[0].Type)
		assert.Equal(t, 2, events[0].ItemCount)
	})

	t.Run("confirmed orders start with confirmed lines", func(t *testing.T) {
		o := newTestOrder(t, order.Confirmed)

		assert.Equal(t, order.ItemConfirmed, o.Items()[0].Status())
	})

	t.Run("should reject other initial statuses", func(t *testing.T) {
		address, _ := order.NewAddress(validAddressDetails())
		token, _ := order.NewToken("ORD20240115-AB12CD")

		o, err := order.NewOrder(order.NewOrderParams{
			Token: token, CustomerID: 1, Address: address, ServiceType: order.WashIron,
			InitialStatus: order.Completed,
			Items:         []order.LineItem{{Category: "A", Product: "B", Quantity: 1}},
			Stamp:         stampAt(t, 0),
		})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "initial status")
	})

	t.Run("should reject empty items and report indexed line errors", func(t *testing.T) {
		address, _ := order.NewAddress(validAddressDetails())
		token, _ := order.NewToken("ORD20240115-AB12CD")
		params := order.NewOrderParams{
			Token: token, CustomerID: 1, Address: address, ServiceType: order.WashIron,
			InitialStatus: order.Pending, Stamp: stampAt(t, 0),
		}

		_, err := order.NewOrder(params)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)

		params.Items = []order.LineItem{
			{Category: "A", Product: "B", Quantity: 1},
			{Category: "A", Product: "C", Quantity: 0},
		}
		_, err = order.NewOrder(params)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "items[1]")
	})

	t.Run("should reject duplicate keys", func(t *testing.T) {
		address, _ := order.NewAddress(validAddressDetails())
		token, _ := order.NewToken("ORD20240115-AB12CD")

		_, err := order.NewOrder(order.NewOrderParams{
			Token: token, CustomerID: 1, Address: address, ServiceType: order.WashIron,
			InitialStatus: order.Pending, Stamp: stampAt(t, 0),
			Items: []order.LineItem{
				{Category: "OTHERS", Product: "TOWEL", Quantity: 1},
				{Category: "Others", Product: "Towel", Quantity: 3},
			},
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate line Others/Towel")
	})

	t.Run("should report every invalid parameter", func(t *testing.T) {
		o, err := order.NewOrder(order.NewOrderParams{})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "token")
		assert.Contains(t, err.Error(), "id")
		assert.ErrorIs(t, err, order.ErrAddressIsNotConstructed)
	})
}

func TestOrder_Transition(t *testing.T) {
	t.Run("completed order cannot go back to pending", func(t *testing.T) {
		o := newTestOrder(t, order.Pending)
		_, err := o.Transition(order.Completed, stampAt(t, time.Hour))
		require.NoError(t, err)

		changed, err := o.Transition(order.Pending, stampAt(t, 2*time.Hour))

		require.Error(t, err)
		assert.False(t, changed)
		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("cancelling twice stamps once", func(t *testing.T) {
		o := newTestOrder(t, order.Pending)
		first := stampAt(t, time.Hour)

		changed, err := o.Transition(order.Cancelled, first)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = o.Transition(order.Cancelled, stampAt(t, 2*time.Hour))
		require.NoError(t, err)
		assert.False(t, changed)

		assert.Equal(t, first.At(), o.Cancelled().At())
		assert.Equal(t, first.At(), o.Updated().At())
		assert.Equal(t, order.ItemCancelled, o.Items()[0].Status())
		assert.Len(t, o.Events(), 2)
	})

	t.Run("skipping forward stamps only the entered state", func(t *testing.T) {
		o := newTestOrder(t, order.Pending)

		_, err := o.Transition(order.Completed, stampAt(t, time.Hour))

		require.NoError(t, err)
		assert.False(t, o.Completed().IsZero())
		assert.True(t, o.Picked().IsZero())
		assert.True(t, o.Delivered().IsZero())
		assert.Equal(t, order.ItemCompleted, o.Items()[0].Status())
	})

	t.Run("delivery after completion keeps both stamps", func(t *testing.T) {
		o := newTestOrder(t, order.Pending)
		_, err := o.Transition(order.Completed, stampAt(t, time.Hour))
		require.NoError(t, err)

		_, err = o.Transition(order.Delivered, stampAt(t, 3*time.Hour))

		require.NoError(t, err)
		assert.Equal(t, createdAt.Add(time.Hour), o.Completed().At())
		assert.Equal(t, createdAt.Add(3*time.Hour), o.Delivered().At())
		assert.True(t, o.Status().IsTerminal())
	})

	t.Run("pick up moves lines into progress", func(t *testing.T) {
		o := newTestOrder(t, order.Confirmed)

		_, err := o.Transition(order.PickedUp, stampAt(t, time.Minute))

		require.NoError(t, err)
		assert.Equal(t, order.ItemInProgress, o.Items()[0].Status())
		assert.Equal(t, createdAt.Add(time.Minute), o.Picked().At())
	})

	t.Run("should reject stamp before creation", func(t *testing.T) {
		o := newTestOrder(t, order.Pending)

		_, err := o.Transition(order.Confirmed, stampAt(t, -time.Minute))

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("status change event carries identity and previous status", func(t *testing.T) {
		o := newTestOrder(t, order.Pending)
		require.NoError(t, o.AssignID(kernel.ID(5)))
		o.ClearEvents()

		_, err := o.Transition(order.Confirmed, stampAt(t, time.Minute))
		require.NoError(t, err)

		events := o.Events()
		require.Len(t, events, 1)
		assert.Equal(t, order.EventOrderStatusChanged, events[0].Type)
		assert.Equal(t, kernel.ID(5), events[0].OrderID)
		assert.Equal(t, order.Pending, events[0].PreviousStatus)
		assert.Equal(t, order.Confirmed, events[0].Status)
		assert.Equal(t, "staff@laundry.test", events[0].Actor)
	})
}

func restoredOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	address, err := order.RestoreAddress(kernel.ID(3), validAddressDetails())
	require.NoError(t, err)

	shirt, err := order.RestoreItem(order.ItemSnapshot{
		ID: 21, OrderID: 9, Category: "Shirts", Product: "Formal Shirt", Quantity: 2,
		ServiceType: order.WashIron, Status: order.ItemPending, Created: stampAt(t, 0),
	})
	require.NoError(t, err)
	towel, err := order.RestoreItem(order.ItemSnapshot{
		ID: 22, OrderID: 9, Category: "Others", Product: "Towel", Quantity: 1,
		ServiceType: order.WashOnly, Status: order.ItemPending, Created: stampAt(t, 0),
	})
	require.NoError(t, err)

	o, err := order.RestoreOrder(order.Snapshot{
		ID: 9, Token: "ORD20240115-AB12CD", CustomerID: 11, Address: address,
		ServiceType: order.WashIron, Status: status,
		Items:   []*order.Item{shirt, towel},
		Created: stampAt(t, 0),
	})
	require.NoError(t, err)
	return o
}

func TestRestoreOrder(t *testing.T) {
	o := restoredOrder(t, order.InProgress)

	assert.Equal(t, kernel.ID(9), o.ID())
	assert.Equal(t, o.Created(), o.Updated())
	assert.Empty(t, o.Events())
	assert.True(t, o.OwnedBy(11))
	assert.False(t, o.OwnedBy(12))
}

func TestOrder_ApplyItemPlan(t *testing.T) {
	t.Run("should revise add and remove in one step", func(t *testing.T) {
		o := restoredOrder(t, order.Pending)
		shirt, err := o.Item(21)
		require.NoError(t, err)

		err = o.ApplyItemPlan(order.ItemPlan{
			Revisions: []order.ItemRevision{{ID: 21, Change: order.ItemChange{Quantity: 5}}},
			Additions: []order.LineItem{{Category: "Sarees", Product: "Silk", Quantity: 1}},
			Removals:  []kernel.ID{22},
		}, stampAt(t, time.Hour))

		require.NoError(t, err)
		require.Len(t, o.Items(), 2)
		assert.Equal(t, 5, shirt.Quantity())
		assert.Equal(t, "Silk", o.Items()[1].Product())
		assert.Equal(t, kernel.ID(9), o.Items()[1].OrderID())
		assert.Equal(t, []kernel.ID{22}, o.RemovedItemIDs())
		assert.Equal(t, order.EventOrderItemsReconciled, o.Events()[0].Type)

		o.ClearRemovedItemIDs()
		assert.Empty(t, o.RemovedItemIDs())
	})

	t.Run("should leave order untouched when one revision fails", func(t *testing.T) {
		o := restoredOrder(t, order.Pending)

		err := o.ApplyItemPlan(order.ItemPlan{
			Revisions: []order.ItemRevision{
				{ID: 21, Change: order.ItemChange{Quantity: 7}},
				{ID: 22, Change: order.ItemChange{Quantity: -1}},
			},
			Removals: []kernel.ID{},
		}, stampAt(t, time.Hour))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "item 22")
		shirt, _ := o.Item(21)
		assert.Equal(t, 2, shirt.Quantity())
		assert.Empty(t, o.Events())
	})

	t.Run("should report a backward line move as illegal transition", func(t *testing.T) {
		o := restoredOrder(t, order.InProgress)
		require.NoError(t, o.ReviseItem(21, order.ItemChange{Status: order.ItemCompleted}, stampAt(t, time.Hour)))
		o.ClearEvents()

		err := o.ApplyItemPlan(order.ItemPlan{
			Revisions: []order.ItemRevision{{ID: 21, Change: order.ItemChange{Status: order.ItemPending}}},
		}, stampAt(t, 2*time.Hour))

		require.ErrorIs(t, err, errs.ErrIllegalTransition)
		assert.NotErrorIs(t, err, errs.ErrValueIsInvalid)
		var illegal *errs.IllegalTransitionError
		require.ErrorAs(t, err, &illegal)
		assert.Contains(t, err.Error(), "item 21")
		shirt, _ := o.Item(21)
		assert.Equal(t, order.ItemCompleted, shirt.Status())
		assert.Empty(t, o.Events())
	})

	t.Run("should reject removing every line", func(t *testing.T) {
		o := restoredOrder(t, order.Pending)

		err := o.ApplyItemPlan(order.ItemPlan{Removals: []kernel.ID{21, 22}}, stampAt(t, time.Hour))

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Len(t, o.Items(), 2)
	})

	t.Run("should reject unknown line", func(t *testing.T) {
		o := restoredOrder(t, order.Pending)

		err := o.ApplyItemPlan(order.ItemPlan{Removals: []kernel.ID{99}}, stampAt(t, time.Hour))

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject addition colliding with kept line", func(t *testing.T) {
		o := restoredOrder(t, order.Pending)

		err := o.ApplyItemPlan(order.ItemPlan{
			Additions: []order.LineItem{{Category: "OTHERS", Product: "TOWEL", Quantity: 1}},
		}, stampAt(t, time.Hour))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate line")
	})

	t.Run("should refuse edits on terminal orders", func(t *testing.T) {
		o := restoredOrder(t, order.Delivered)

		err := o.ReviseItem(21, order.ItemChange{Quantity: 3}, stampAt(t, time.Hour))

		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("lines added to an in progress order follow it", func(t *testing.T) {
		o := restoredOrder(t, order.InProgress)

		err := o.ApplyItemPlan(order.ItemPlan{
			Additions: []order.LineItem{{Category: "Sarees", Product: "Silk", Quantity: 1}},
		}, stampAt(t, time.Hour))

		require.NoError(t, err)
		assert.Equal(t, order.ItemInProgress, o.Items()[2].Status())
	})

	t.Run("empty plan is a no-op", func(t *testing.T) {
		o := restoredOrder(t, order.Pending)

		require.NoError(t, o.ApplyItemPlan(order.ItemPlan{}, stampAt(t, time.Hour)))
		assert.Empty(t, o.Events())
	})
}

func TestOrder_ReplaceAddressAndServiceType(t *testing.T) {
	o := restoredOrder(t, order.Pending)
	d := validAddressDetails()
	d.City = "Mysuru"
	next, err := order.NewAddress(d)
	require.NoError(t, err)

	require.NoError(t, o.ReplaceAddress(next, stampAt(t, time.Hour)))
	require.NoError(t, o.ChangeServiceType(order.DryCleaning, stampAt(t, time.Hour)))

	assert.Equal(t, kernel.ID(3), o.Address().ID())
	assert.Equal(t, "Mysuru", o.Address().City())
	assert.Equal(t, order.DryCleaning, o.ServiceType())
	assert.Equal(t, order.WashOnly, o.Items()[1].ServiceType())
}

func TestOrder_AssignID(t *testing.T) {
	o := newTestOrder(t, order.Pending)

	require.NoError(t, o.AssignID(4))
	require.NoError(t, o.AssignAddressID(8))

	assert.Equal(t, kernel.ID(4), o.Items()[0].OrderID())
	assert.Equal(t, kernel.ID(8), o.Address().ID())
	assert.Error(t, o.AssignID(5))
	assert.Error(t, o.AssignID(0))
}

func TestOrder_MarkDeleted(t *testing.T) {
	o := restoredOrder(t, order.Pending)

	o.MarkDeleted(stampAt(t, time.Hour))

	events := o.Events()
	require.Len(t, events, 1)
	assert.Equal(t, order.EventOrderDeleted, events[0].Type)
	assert.Equal(t, "ORD20240115-AB12CD", events[0].Token)
}
