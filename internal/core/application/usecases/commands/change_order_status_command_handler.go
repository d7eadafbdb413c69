package commands

import (
	"context"
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ChangeOrderStatusCommandHandler runs status transitions.
//
// Staff and admins may request any legal transition. The owning customer may
// only cancel, and only while the order is still pending or confirmed.
type ChangeOrderStatusCommandHandler struct {
	uowFactory   OrderUoWFactory
	lifecycle    services.OrderLifecycle
	clock        Clock
	onTransition TransitionObserver
}

func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	clock Clock,
	onTransition TransitionObserver,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory:   uowFactory,
		lifecycle:    services.NewOrderLifecycle(),
		clock:        clock,
		onTransition: onTransition,
	}
}

func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (_ *order.Order, err error) {
	ctx, span := startSpan(ctx, "ChangeOrderStatus",
		attribute.Int64("order.id", cmd.OrderID().Int64()),
		attribute.String("order.target_status", cmd.Target().String()))
	defer func() { endSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
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

	if err = authorizeTransition(cmd.Actor(), o, cmd.Target()); err != nil {
		return nil, err
	}

	outcome, err := h.lifecycle.Transition(o, cmd.Target(), stamp)
	if err != nil {
		return nil, err
	}
	if !outcome.StatusChanged {
		return o, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, persistenceFailure("update order status", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, persistenceFailure("commit order status", err)
	}

	observability.FromContext(ctx).Info("Order status changed",
		zap.Int64("order_id", o.ID().Int64()),
		zap.String("from", outcome.Previous.String()),
		zap.String("to", o.Status().String()))
	if h.onTransition != nil {
		h.onTransition(outcome.Previous, o.Status())
	}
	return o, nil
}

func authorizeTransition(actor kernel.Actor, o *order.Order, target order.Status) error {
	if actor.IsElevated() {
		return nil
	}
	if !actor.Owns(o.CustomerID()) {
		return errs.NewForbiddenError("change order status")
	}
	if target != order.Cancelled {
		return errs.NewForbiddenErrorWithCause("change order status",
			fmt.Errorf("customers may only cancel, not move to %s", target))
	}
	if s := o.Status(); s != order.Pending && s != order.Confirmed && s != order.Cancelled {
		return errs.NewForbiddenErrorWithCause("cancel order",
			fmt.Errorf("order is already %s", s))
	}
	return nil
}
