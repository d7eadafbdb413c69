package jobs

import (
	"context"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/pkg/observability"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	DefaultRelaySchedule  = "*/5 * * * * *"
	DefaultRelayBatchSize = 100
)

// OutboxRelayer is satisfied by *commands.RelayOutboxCommandHandler.
type OutboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

type OutboxRelayConfig struct {
	Schedule  string
	BatchSize int
}

// OutboxRelayJob drains the outbox on a schedule.
type OutboxRelayJob struct {
	relayer OutboxRelayer
	config  OutboxRelayConfig
	metrics *observability.Metrics
	cron    *cron.Cron
	logger  *zap.Logger
}

func NewOutboxRelayJob(
	relayer OutboxRelayer,
	config OutboxRelayConfig,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *OutboxRelayJob {
	if config.Schedule == "" {
		config.Schedule = DefaultRelaySchedule
	}
	if config.BatchSize == 0 {
		config.BatchSize = DefaultRelayBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &OutboxRelayJob{
		relayer: relayer,
		config:  config,
		metrics: metrics,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With(zap.String("component", "outbox_relay_job")),
	}
}

func (j *OutboxRelayJob) Name() string {
	return "outbox relay job"
}

func (j *OutboxRelayJob) Start() error {
	cmd, err := commands.NewRelayOutboxCommand(j.config.BatchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.config.Schedule, func() {
		_ = j.run(context.Background(), cmd)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Outbox relay job started",
		zap.String("schedule", j.config.Schedule),
		zap.Int("batch_size", j.config.BatchSize))
	return nil
}

// Stop waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Outbox relay job stopped")
}

// RunOnce relays a single batch outside of the schedule.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) error {
	cmd, err := commands.NewRelayOutboxCommand(j.config.BatchSize)
	if err != nil {
		return err
	}
	return j.run(ctx, cmd)
}

func (j *OutboxRelayJob) run(ctx context.Context, cmd commands.RelayOutboxCommand) error {
	published, err := j.relayer.Handle(ctx, cmd)
	if err != nil {
		j.count("failed", 1)
		j.logger.Error("Outbox relay failed", zap.Error(err))
		return err
	}
	if published > 0 {
		j.count("published", published)
		j.logger.Debug("Outbox relayed", zap.Int("published", published))
	}
	return nil
}

func (j *OutboxRelayJob) count(result string, n int) {
	if j.metrics == nil {
		return
	}
	j.metrics.OutboxRelay.WithLabelValues(result).Add(float64(n))
}
