package commands

import (
	"context"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DeleteOrderCommandHandler hard-deletes an order. Owners and staff may delete.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory, clock Clock) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) (err error) {
	ctx, span := startSpan(ctx, "DeleteOrder", attribute.Int64("order.id", cmd.OrderID().Int64()))
	defer func() { endSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	stamp, err := stampFor(h.clock, actorRef(cmd.Actor()))
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return persistenceFailure("begin", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return persistenceFailure("load order", err)
	}

	if !canAccess(cmd.Actor(), o) {
		return errs.NewForbiddenError("delete order")
	}

	o.MarkDeleted(stamp)
	if err = orderRepo.Delete(ctx, o); err != nil {
		return persistenceFailure("delete order", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return persistenceFailure("commit order deletion", err)
	}

	observability.FromContext(ctx).Info("Order deleted", zap.Int64("order_id", cmd.OrderID().Int64()))
	return nil
}
