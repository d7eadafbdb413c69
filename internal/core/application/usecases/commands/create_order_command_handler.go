package commands

import (
	"context"
	"errors"

	"laundry/internal/core/domain/model/customer"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// maxCreateAttempts bounds retries after a token clash at insert time.
const maxCreateAttempts = 3

// CreatedOrder is the result of order creation.
type CreatedOrder struct {
	Order    *order.Order
	Customer *customer.Customer
}

// CreateOrderCommandHandler assembles and stores a new order.
//
// Steps, all inside one transaction:
//   - merge duplicate lines
//   - resolve the customer, creating a guest record when needed
//   - snapshot the delivery address, defaulting name and mobile to the customer
//   - issue a token
//   - store address, order and items
//
// When storage reports a duplicate token the whole unit is retried with a new
// token, up to maxCreateAttempts times.
type CreateOrderCommandHandler struct {
	uowFactory CreateOrderUoWFactory
	merger     services.ItemMerger
	resolver   services.CustomerResolver
	tokens     *services.TokenGenerator
	clock      Clock
}

func NewCreateOrderCommandHandler(
	uowFactory CreateOrderUoWFactory,
	resolver services.CustomerResolver,
	tokens *services.TokenGenerator,
	clock Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		merger:     services.NewItemMerger(),
		resolver:   resolver,
		tokens:     tokens,
		clock:      clock,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (_ CreatedOrder, err error) {
	ctx, span := startSpan(ctx, "CreateOrder", attribute.Bool("order.guest", cmd.IsGuest()))
	defer func() { endSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return CreatedOrder{}, err
	}

	items, err := h.merger.Merge(cmd.Items())
	if err != nil {
		return CreatedOrder{}, err
	}

	for attempt := 1; ; attempt++ {
		created, createErr := h.create(ctx, cmd, items)
		if createErr == nil {
			span.SetAttributes(attribute.Int64("order.id", created.Order.ID().Int64()))
			observability.FromContext(ctx).Info("Order created",
				zap.Int64("order_id", created.Order.ID().Int64()),
				zap.String("token", created.Order.Token().String()),
				zap.String("status", created.Order.Status().String()))
			return created, nil
		}
		if !errors.Is(createErr, ports.ErrDuplicateToken) {
			return CreatedOrder{}, createErr
		}
		observability.FromContext(ctx).Warn("Order token taken, retrying", zap.Int("attempt", attempt))
		if attempt == maxCreateAttempts {
			return CreatedOrder{}, errs.NewConflictError("token", createErr)
		}
	}
}

func (h *CreateOrderCommandHandler) create(
	ctx context.Context,
	cmd CreateOrderCommand,
	items []order.LineItem,
) (CreatedOrder, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreatedOrder{}, persistenceFailure("begin", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	resolution, err := h.resolver.Resolve(ctx, uow.CustomerRepository(), cmd.Actor(), cmd.Hint())
	if err != nil {
		return CreatedOrder{}, persistenceFailure("resolve customer", err)
	}

	address, err := order.NewAddress(addressFor(cmd.Address(), resolution.Customer))
	if err != nil {
		return CreatedOrder{}, err
	}

	stamp, err := stampFor(h.clock, cmd.Actor())
	if err != nil {
		return CreatedOrder{}, err
	}

	orderRepo := uow.OrderRepository()
	o, err := order.NewOrder(order.NewOrderParams{
		Token:         h.tokens.Generate(ctx, orderRepo),
		CustomerID:    resolution.Customer.ID(),
		Address:       address,
		ServiceType:   cmd.ServiceType(),
		InitialStatus: resolution.InitialStatus,
		Items:         items,
		Stamp:         stamp,
	})
	if err != nil {
		return CreatedOrder{}, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return CreatedOrder{}, persistenceFailure("add order", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return CreatedOrder{}, persistenceFailure("commit order", err)
	}

	return CreatedOrder{Order: o, Customer: resolution.Customer}, nil
}

// addressFor fills the contact fields of the snapshot from the customer.
func addressFor(details order.AddressDetails, c *customer.Customer) order.AddressDetails {
	if details.Name == "" {
		details.Name = c.Name()
	}
	if details.Mobile == "" {
		details.Mobile = c.Mobile().String()
	}
	return details
}
