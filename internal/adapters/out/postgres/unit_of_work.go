// Package postgres implements the Unit of Work on top of GORM transactions.
//
// A unit of work wraps one business transaction. Repositories obtained from it
// share the transaction started by Begin. Order aggregates passing through the
// order repository are tracked, and Commit writes their recorded events into
// the outbox table before committing, so a state change and its events are
// stored together or not at all.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// A UnitOfWork is not safe for concurrent use; create one per request.
package postgres

import (
	"context"

	"laundry/internal/adapters/out/postgres/customerrepo"
	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/adapters/out/postgres/outboxrepo"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.ID
	Aggregate any
}

// eventSource is implemented by aggregates that record domain events.
type eventSource interface {
	Events() []order.Event
	ClearEvents()
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db         *gorm.DB
	normalizer services.StatusNormalizer
	topic      string
}

// NewGormUnitOfWorkFactory creates the factory. topic names the message topic
// recorded on outbox rows; an empty topic falls back to outboxrepo.DefaultTopic.
func NewGormUnitOfWorkFactory(db *gorm.DB, normalizer services.StatusNormalizer, topic string) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, normalizer: normalizer, topic: topic}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		normalizer:        f.normalizer,
		topic:             f.topic,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the aggregates
// written inside it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	normalizer        services.StatusNormalizer
	topic             string
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. A second call while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit writes pending events of tracked aggregates to the outbox and commits.
// When the outbox write fails the transaction is rolled back.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.flushEvents(ctx); err != nil {
		_ = uow.tx.Rollback().Error
		uow.tx = nil
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// Rollback discards the transaction. It returns gorm.ErrInvalidTransaction when
// nothing is open, which is the normal case after Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow, uow.normalizer)
}

func (uow *GormUnitOfWork) CustomerRepository() ports.CustomerRepository {
	return customerrepo.NewGormCustomerRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn(), uow.topic, uow.normalizer)
}

// TrackAggregate is called by repositories after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.ID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) flushEvents(ctx context.Context) error {
	var events []order.Event
	for _, tracked := range uow.trackedAggregates {
		source, ok := tracked.Aggregate.(eventSource)
		if !ok {
			continue
		}
		events = append(events, source.Events()...)
		source.ClearEvents()
	}
	if len(events) == 0 {
		return nil
	}
	return uow.OutboxRepository().Append(ctx, events)
}
