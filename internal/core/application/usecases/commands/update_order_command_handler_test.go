package commands_test

import (
	"errors"
	"testing"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderCommand(t *testing.T) {
	_, err := commands.NewUpdateOrderCommand(kernel.Actor{}, 9, services.OrderUpdate{})
	require.Error(t, err)

	_, err = commands.NewUpdateOrderCommand(staffActor(t), 0, services.OrderUpdate{})
	require.Error(t, err)

	cmd, err := commands.NewUpdateOrderCommand(staffActor(t), 9, services.OrderUpdate{})
	require.NoError(t, err)
	assert.Equal(t, kernel.ID(9), cmd.OrderID())
}

func TestUpdateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, order.Confirmed)
	target := order.PickedUp
	service := order.DryCleaning
	cmd, err := commands.NewUpdateOrderCommand(staffActor(t), 9, services.OrderUpdate{
		Status:      &target,
		ServiceType: &service,
		Items: []services.ItemPatch{
			{ID: 21, Quantity: 3},
			{Category: "Others", Product: "Towel", Quantity: 1},
		},
	})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, kernel.ID(9)).Return(stored, nil).Once(),
		repo.On("Update", mock.Anything, stored).Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	var observed []order.Status
	h := commands.NewUpdateOrderCommandHandler(factory, fixedClock, func(from, to order.Status) {
		observed = append(observed, from, to)
	})
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.PickedUp, updated.Status())
	assert.Equal(t, order.DryCleaning, updated.ServiceType())
	assert.Equal(t, testNow, updated.Picked().At())
	require.Len(t, updated.Items(), 2)
	assert.Equal(t, 3, updated.Items()[0].Quantity())
	assert.Equal(t, order.DryCleaning, updated.Items()[1].ServiceType())
	assert.Equal(t, []order.Status{order.Confirmed, order.PickedUp}, observed)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_CustomerIsForbidden(t *testing.T) {
	cmd, err := commands.NewUpdateOrderCommand(customerActor(t, 7), 9, services.OrderUpdate{})
	require.NoError(t, err)
	factory := new(MockOrderUoWFactory)

	h := commands.NewUpdateOrderCommandHandler(factory, fixedClock, nil)
	_, err = h.Handle(t.Context(), cmd)

	assert.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestUpdateOrderCommandHandler_Handle_TerminalOrderIsNotModified(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, order.Cancelled)
	service := order.DryCleaning
	cmd, err := commands.NewUpdateOrderCommand(staffActor(t), 9, services.OrderUpdate{ServiceType: &service})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, kernel.ID(9)).Return(stored, nil).Once()
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", mock.Anything).Return(nil)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewUpdateOrderCommandHandler(factory, fixedClock, nil)
	_, err = h.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	assert.Equal(t, order.WashIron, stored.ServiceType())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewUpdateOrderCommand(staffActor(t), 404, services.OrderUpdate{})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, kernel.ID(404)).Return(nil, errs.NewObjectNotFoundError("order", kernel.ID(404))).Once()
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", mock.Anything).Return(nil)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewUpdateOrderCommandHandler(factory, fixedClock, nil)
	_, err = h.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.NotErrorIs(t, err, errs.ErrPersistenceFailure)
}

func TestUpdateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, order.Pending)
	target := order.Confirmed
	cmd, err := commands.NewUpdateOrderCommand(staffActor(t), 9, services.OrderUpdate{Status: &target})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, kernel.ID(9)).Return(stored, nil)
	repo.On("Update", mock.Anything, stored).Return(nil)
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Commit", mock.Anything).Return(errors.New("commit error"))
	uow.On("Rollback", mock.Anything).Return(nil)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	called := false
	h := commands.NewUpdateOrderCommandHandler(factory, fixedClock, func(order.Status, order.Status) { called = true })
	_, err = h.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrPersistenceFailure)
	assert.False(t, called)
}
