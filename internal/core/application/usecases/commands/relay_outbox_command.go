package commands

import (
	"errors"
	"fmt"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

const maxRelayBatch = 1000

var ErrRelayOutboxCommandIsNotConstructed = errors.New(
	"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
)

// RelayOutboxCommand publishes one batch of pending outbox messages.
type RelayOutboxCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewRelayOutboxCommand(batchSize int) (RelayOutboxCommand, error) {
	if batchSize <= 0 || batchSize > maxRelayBatch {
		return RelayOutboxCommand{}, errs.NewValueIsOutOfRangeErrorWithCause("batch size", batchSize, 1, maxRelayBatch,
			fmt.Errorf("%d is outside of the allowed batch", batchSize))
	}
	return RelayOutboxCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}

func (c RelayOutboxCommand) BatchSize() int {
	return c.batchSize
}
