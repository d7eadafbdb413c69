package commands_test

import (
	"context"
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/customer"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) TokenExists(_ context.Context, _ string) (bool, error) {
	return false, nil
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.ID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*customer.Customer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerRepository) FindActiveByMobile(ctx context.Context, mobile kernel.Mobile) (*customer.Customer, error) {
	args := m.Called(ctx, mobile)
	if c := args.Get(0); c != nil {
		return c.(*customer.Customer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Append(ctx context.Context, events []order.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockOutboxRepository) Pending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if msgs := args.Get(0); msgs != nil {
		return msgs.([]ports.OutboxMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOutboxRepository) MarkSent(ctx context.Context, ids []string, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, msgs []ports.OutboxMessage) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

// MockUoW satisfies every unit of work flavor used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCreateOrderUoWFactory struct{ mock.Mock }

func (m *MockCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.CreateOrderUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

var testNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func staffActor(t *testing.T) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(1, kernel.RoleStaff, "Meera", "meera@laundry.test")
	require.NoError(t, err)
	return a
}

func customerActor(t *testing.T, id kernel.ID) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(id, kernel.RoleCustomer, "Ravi", "")
	require.NoError(t, err)
	return a
}

// storedOrder builds an order as the repository would return it.
func storedOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	created, err := order.NewStamp(testNow.Add(-time.Hour), "meera@laundry.test")
	require.NoError(t, err)

	address, err := order.RestoreAddress(3, order.AddressDetails{
		Name: "Ravi", Mobile: "9000000002", Line1: "12 MG Road", City: "Bengaluru", Pincode: "560001",
	})
	require.NoError(t, err)

	item, err := order.RestoreItem(order.ItemSnapshot{
		ID: 21, OrderID: 9, Category: "Shirts", Product: "Formal Shirt", Quantity: 2,
		ServiceType: order.WashIron, Status: order.ItemPending, Created: created,
	})
	require.NoError(t, err)

	o, err := order.RestoreOrder(order.Snapshot{
		ID: 9, Token: "ORD20240115-AB12CD", CustomerID: 7, Address: address,
		ServiceType: order.WashIron, Status: status, Items: []*order.Item{item}, Created: created,
	})
	require.NoError(t, err)
	return o
}
