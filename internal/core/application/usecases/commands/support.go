package commands

import (
	"context"
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// guestAuditName marks stamps written by unauthenticated requests.
const guestAuditName = "guest"

// Clock supplies the time written into audit stamps.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

var tracer = otel.Tracer("laundry/commands")

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func stampFor(clock Clock, actor *kernel.Actor) (order.Stamp, error) {
	by := guestAuditName
	if actor != nil {
		by = actor.AuditName()
	}
	return order.NewStamp(clock.now(), by)
}

// persistenceFailure wraps storage errors raised during the write phase.
// Domain errors pass through so that callers can still tell them apart.
func persistenceFailure(operation string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errs.IsValidation(err),
		errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, errs.ErrForbidden),
		errors.Is(err, errs.ErrIllegalTransition),
		errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrPersistenceFailure),
		errors.Is(err, ports.ErrDuplicateToken):
		return err
	default:
		return errs.NewPersistenceError(operation, err)
	}
}

func requireElevated(actor kernel.Actor, action string) error {
	if !actor.IsElevated() {
		return errs.NewForbiddenError(action)
	}
	return nil
}

// canAccess reports staff access or ownership of the order.
func canAccess(actor kernel.Actor, o *order.Order) bool {
	return actor.IsElevated() || actor.Owns(o.CustomerID())
}

func actorRef(actor kernel.Actor) *kernel.Actor {
	return &actor
}
