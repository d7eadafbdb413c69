package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories returned by it
// run inside the transaction started by Begin. Events recorded by aggregates
// that pass through its repositories are written to the outbox on Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit flushes pending events to the outbox and commits.
	Commit(ctx context.Context) error

	// Rollback discards the transaction. Calling it after Commit returns an error that callers may ignore.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	CustomerRepository() CustomerRepository
	OutboxRepository() OutboxRepository
}
