package commands

import (
	"context"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"

	"go.opentelemetry.io/otel/attribute"
)

// TransitionObserver is told about every status change that was stored.
type TransitionObserver func(from, to order.Status)

// UpdateOrderCommandHandler applies a staff edit to an order.
type UpdateOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	lifecycle    services.OrderLifecycle
	clock        Clock
	onTransition TransitionObserver
}

func NewUpdateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	clock Clock,
	onTransition TransitionObserver,
) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory:   uowFactory,
		lifecycle:    services.NewOrderLifecycle(),
		clock:        clock,
		onTransition: onTransition,
	}
}

func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (_ *order.Order, err error) {
	ctx, span := startSpan(ctx, "UpdateOrder", attribute.Int64("order.id", cmd.OrderID().Int64()))
	defer func() { endSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return nil, err
	}
	if err = requireElevated(cmd.Actor(), "update order"); err != nil {
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

	outcome, err := h.lifecycle.Update(o, cmd.Update(), stamp)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, persistenceFailure("update order", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, persistenceFailure("commit order", err)
	}

	if outcome.StatusChanged && h.onTransition != nil {
		h.onTransition(outcome.Previous, o.Status())
	}
	return o, nil
}
