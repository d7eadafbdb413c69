package commands

import (
	"context"

	"laundry/internal/core/domain/model/order"

	"go.opentelemetry.io/otel/attribute"
)

// UpdateOrderItemCommandHandler applies a staff edit to a single line.
type UpdateOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewUpdateOrderItemCommandHandler(uowFactory OrderUoWFactory, clock Clock) UpdateOrderItemCommandHandler {
	return UpdateOrderItemCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *UpdateOrderItemCommandHandler) Handle(ctx context.Context, cmd UpdateOrderItemCommand) (_ *order.Item, err error) {
	ctx, span := startSpan(ctx, "UpdateOrderItem",
		attribute.Int64("order.id", cmd.OrderID().Int64()),
		attribute.Int64("order.item_id", cmd.ItemID().Int64()))
	defer func() { endSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return nil, err
	}
	if err = requireElevated(cmd.Actor(), "update order item"); err != nil {
		return nil, err
	}

	stamp, err := stampFor(h.clock, actorRef(cmd.Actor()))
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, persistenceFailure("begin", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, persistenceFailure("load order", err)
	}

	if err = o.ReviseItem(cmd.ItemID(), cmd.Change(), stamp); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, persistenceFailure("update order item", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, persistenceFailure("commit order item", err)
	}

	return o.Item(cmd.ItemID())
}
