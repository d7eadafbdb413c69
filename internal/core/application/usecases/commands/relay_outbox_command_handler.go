package commands

import (
	"context"

	"laundry/internal/core/ports"

	"go.opentelemetry.io/otel/attribute"
)

// RelayOutboxCommandHandler moves stored events to the broker.
//
// Rows stay locked for the duration of the publish, so two relays never send
// the same batch. A failed publish rolls back and the rows are retried on the
// next run; consumers must tolerate duplicates when a commit fails after publish.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	clock      Clock
}

func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{uowFactory: uowFactory, publisher: publisher, clock: clock}
}

// Handle returns the number of messages published.
func (h *RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (_ int, err error) {
	ctx, span := startSpan(ctx, "RelayOutbox", attribute.Int("outbox.batch_size", cmd.BatchSize()))
	defer func() { endSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, persistenceFailure("begin", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	messages, err := outbox.Pending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, persistenceFailure("load outbox", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	if err = h.publisher.Publish(ctx, messages); err != nil {
		return 0, err
	}

	ids := make([]string, len(messages))
	for i, m := range messages {
		ids[i] = m.EventID
	}
	if err = outbox.MarkSent(ctx, ids, h.clock.now()); err != nil {
		return 0, persistenceFailure("mark outbox sent", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, persistenceFailure("commit outbox", err)
	}

	span.SetAttributes(attribute.Int("outbox.published", len(messages)))
	return len(messages), nil
}
