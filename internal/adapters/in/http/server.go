// Package http exposes the order lifecycle over a JSON REST API built on echo.
package http

import (
	"context"
	"errors"
	"net/http"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/observability"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// Use case ports. The command and query handlers satisfy them through pointers.
type (
	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreatedOrder, error)
	}
	OrderUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
	}
	StatusChanger interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error)
	}
	ItemUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderItemCommand) (*order.Item, error)
	}
	OrderDeleter interface {
		Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
	}
	OrderReader interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderDetails, error)
	}
	OrderLister interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.OrderPage, error)
	}
)

type Handlers struct {
	CreateOrder  OrderCreator
	UpdateOrder  OrderUpdater
	ChangeStatus StatusChanger
	UpdateItem   ItemUpdater
	DeleteOrder  OrderDeleter
	GetOrder     OrderReader
	ListOrders   OrderLister
}

type Config struct {
	JWTSecret  []byte
	Normalizer services.StatusNormalizer
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// Server owns the echo instance and the routes of the order API.
type Server struct {
	echo       *echo.Echo
	handlers   Handlers
	normalizer services.StatusNormalizer
}

// NewServer loads the embedded API description and registers every route.
// An invalid description fails construction.
func NewServer(handlers Handlers, cfg Config) (*Server, error) {
	if len(cfg.JWTSecret) == 0 {
		return nil, errors.New("http: jwt secret is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NewMetrics()
	}

	if _, err := LoadSpec(context.Background()); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.OFF)
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(cfg.Logger))
	e.Use(requestMetrics(cfg.Metrics))
	e.Use(middleware.Recover())

	s := &Server{echo: e, handlers: handlers, normalizer: cfg.Normalizer}
	s.routes(authenticate(cfg.JWTSecret), cfg.Metrics)
	return s, nil
}

func (s *Server) routes(auth echo.MiddlewareFunc, metrics *observability.Metrics) {
	e := s.echo

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", openapiDocument)
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.yaml")))

	e.POST("/orders/public", s.CreateGuestOrder)

	orders := e.Group("/orders", auth)
	orders.POST("", s.CreateOrder)
	orders.GET("", s.ListOrders)
	orders.GET("/:id", s.GetOrder)
	orders.PUT("/:id", s.UpdateOrder)
	orders.DELETE("/:id", s.DeleteOrder)
	orders.PATCH("/:id/status", s.ChangeStatus)
	orders.POST("/:id/confirm", s.quickAction(order.Confirmed))
	orders.POST("/:id/pick", s.quickAction(order.PickedUp))
	orders.POST("/:id/complete", s.quickAction(order.Completed))
	orders.POST("/:id/deliver", s.quickAction(order.Delivered))
	orders.POST("/:id/cancel", s.quickAction(order.Cancelled))
	orders.GET("/:id/items", s.GetOrderItems)
	orders.PUT("/:id/items/:itemId", s.UpdateOrderItem)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks serving addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
