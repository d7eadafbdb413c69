package cmd

import (
	"laundry/internal/adapters/out/postgres"
	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/observability"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	normalizer services.StatusNormalizer
	resolver   services.CustomerResolver
	tokens     *services.TokenGenerator
	metrics    *observability.Metrics
	logger     *zap.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, metrics *observability.Metrics, logger *zap.Logger) *CompositionRoot {
	normalizer := services.NewStatusNormalizer(func(kind services.VocabularyKind, raw string) {
		logger.Warn("unmapped vocabulary value", zap.String("kind", string(kind)), zap.String("value", raw))
		metrics.Unmapped.WithLabelValues(string(kind)).Inc()
	})

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, normalizer, configs.KafkaOrderEventsTopic),
		normalizer: normalizer,
		resolver:   services.NewCustomerResolver(services.BcryptHash),
		tokens:     services.NewTokenGenerator(),
		metrics:    metrics,
		logger:     logger,
	}
}

func (c *CompositionRoot) Normalizer() services.StatusNormalizer {
	return c.normalizer
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	var f commands.CreateOrderUoWFactory = FuncCreateOrderUoWFactory(func() commands.CreateOrderUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateOrderCommandHandler(f, c.resolver, c.tokens, nil)
	return &h
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() *commands.UpdateOrderCommandHandler {
	h := commands.NewUpdateOrderCommandHandler(c.orderUoWFactory(), nil, c.observeTransition)
	return &h
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() *commands.ChangeOrderStatusCommandHandler {
	h := commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), nil, c.observeTransition)
	return &h
}

func (c *CompositionRoot) CreateUpdateOrderItemCommandHandler() *commands.UpdateOrderItemCommandHandler {
	h := commands.NewUpdateOrderItemCommandHandler(c.orderUoWFactory(), nil)
	return &h
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() *commands.DeleteOrderCommandHandler {
	h := commands.NewDeleteOrderCommandHandler(c.orderUoWFactory(), nil)
	return &h
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler(publisher ports.EventPublisher) *commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewRelayOutboxCommandHandler(f, publisher, nil)
	return &h
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.normalizer)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB, c.normalizer)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) observeTransition(from, to order.Status) {
	c.metrics.Transitions.WithLabelValues(from.String(), to.String()).Inc()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCreateOrderUoWFactory func() commands.CreateOrderUoW

func (f FuncCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
