package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpin "laundry/internal/adapters/in/http"
	"laundry/internal/adapters/out/kafka"
	"laundry/internal/jobs"
	"laundry/internal/pkg/observability"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the outbox relay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			logger, err := observability.NewLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg Config, logger *zap.Logger) error {
	logger.Info("starting", zap.Any("config", cfg.redacted()))

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeDatabase(db); closeErr != nil {
			logger.Warn("closing database", zap.Error(closeErr))
		}
	}()

	metrics := observability.NewMetrics()
	app := NewCompositionRoot(cfg, db, metrics, logger)

	server, err := httpin.NewServer(httpin.Handlers{
		CreateOrder:  app.CreateCreateOrderCommandHandler(),
		UpdateOrder:  app.CreateUpdateOrderCommandHandler(),
		ChangeStatus: app.CreateChangeOrderStatusCommandHandler(),
		UpdateItem:   app.CreateUpdateOrderItemCommandHandler(),
		DeleteOrder:  app.CreateDeleteOrderCommandHandler(),
		GetOrder:     app.CreateGetOrderQueryHandler(),
		ListOrders:   app.CreateListOrdersQueryHandler(),
	}, httpin.Config{
		JWTSecret:  []byte(cfg.JWTSecret),
		Normalizer: app.Normalizer(),
		Metrics:    metrics,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	jobManager, err := startJobs(cfg, app, metrics, logger)
	if err != nil {
		return err
	}
	defer jobManager.StopAll()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.ListenAddr()))
		serverErr <- server.Start(cfg.ListenAddr())
	}()

	select {
	case err = <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return errors.Join(server.Shutdown(shutdownCtx), <-serverErr)
}

// startJobs runs the outbox relay when brokers are configured. Without
// brokers events stay in the outbox until a relay is started.
func startJobs(cfg Config, app *CompositionRoot, metrics *observability.Metrics, logger *zap.Logger) (*jobs.JobManager, error) {
	brokers := kafka.ParseBrokers(cfg.KafkaBrokers)
	if len(brokers) == 0 {
		logger.Warn("KAFKA_BROKERS is empty, outbox relay disabled")
		return jobs.NewJobManager(), nil
	}

	publisher, err := kafka.NewPublisher(brokers)
	if err != nil {
		return nil, err
	}
	relay := jobs.NewOutboxRelayJob(
		app.CreateRelayOutboxCommandHandler(publisher),
		jobs.OutboxRelayConfig{Schedule: cfg.OutboxRelaySchedule, BatchSize: cfg.OutboxBatchSize},
		metrics,
		logger,
	)
	manager := jobs.NewJobManager(closerJob{name: "kafka_publisher", close: publisher.Close, logger: logger}, relay)
	if err = manager.StartAll(); err != nil {
		return nil, err
	}
	return manager, nil
}

// closerJob releases a resource when the job manager stops. Jobs stop in
// reverse order, so it must be registered before the jobs that use it.
type closerJob struct {
	name   string
	close  func() error
	logger *zap.Logger
}

func (j closerJob) Name() string { return j.name }
func (j closerJob) Start() error { return nil }
func (j closerJob) Stop() {
	if err := j.close(); err != nil {
		j.logger.Warn("closing "+j.name, zap.Error(err))
	}
}
