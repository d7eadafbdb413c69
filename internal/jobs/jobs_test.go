package jobs

import (
	"context"
	"errors"
	"testing"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/pkg/observability"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockRelayer struct {
	mock.Mock
}

func (m *MockRelayer) Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func TestOutboxRelayJob_RunOnceCountsPublished(t *testing.T) {
	relayer := new(MockRelayer)
	metrics := observability.NewMetrics()
	job := NewOutboxRelayJob(relayer, OutboxRelayConfig{BatchSize: 10}, metrics, zap.NewNop())

	relayer.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RelayOutboxCommand) bool {
		return cmd.BatchSize() == 10
	})).Return(3, nil)

	err := job.RunOnce(context.Background())

	require.NoError(t, err)
	assert.InDelta(t, 3, testutil.ToFloat64(metrics.OutboxRelay.WithLabelValues("published")), 0)
	relayer.AssertExpectations(t)
}

func TestOutboxRelayJob_RunOnceLogsFailure(t *testing.T) {
	relayer := new(MockRelayer)
	metrics := observability.NewMetrics()
	core, logs := observer.New(zap.InfoLevel)
	job := NewOutboxRelayJob(relayer, OutboxRelayConfig{}, metrics, zap.New(core))
	brokerDown := errors.New("broker unreachable")

	relayer.On("Handle", mock.Anything, mock.Anything).Return(0, brokerDown)

	err := job.RunOnce(context.Background())

	assert.ErrorIs(t, err, brokerDown)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.OutboxRelay.WithLabelValues("failed")), 0)
	entries := logs.FilterMessage("Outbox relay failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "outbox_relay_job", entries[0].ContextMap()["component"])
}

func TestOutboxRelayJob_Defaults(t *testing.T) {
	job := NewOutboxRelayJob(new(MockRelayer), OutboxRelayConfig{}, nil, nil)

	assert.Equal(t, DefaultRelaySchedule, job.config.Schedule)
	assert.Equal(t, DefaultRelayBatchSize, job.config.BatchSize)
}

func TestOutboxRelayJob_StartRejectsBadSchedule(t *testing.T) {
	job := NewOutboxRelayJob(new(MockRelayer), OutboxRelayConfig{Schedule: "every now and then"}, nil, nil)

	assert.Error(t, job.Start())
}

func TestOutboxRelayJob_StartAndStop(t *testing.T) {
	job := NewOutboxRelayJob(new(MockRelayer), OutboxRelayConfig{Schedule: "0 0 0 1 1 *"}, nil, nil)

	require.NoError(t, job.Start())
	job.Stop()
}

type fakeJob struct {
	name     string
	startErr error
	events   *[]string
}

func (j fakeJob) Name() string { return j.name }

func (j fakeJob) Start() error {
	*j.events = append(*j.events, "start "+j.name)
	return j.startErr
}

func (j fakeJob) Stop() {
	*j.events = append(*j.events, "stop "+j.name)
}

func TestJobManager_StartAllAndStopAll(t *testing.T) {
	var events []string
	manager := NewJobManager(fakeJob{name: "a", events: &events}, fakeJob{name: "b", events: &events})

	require.NoError(t, manager.StartAll())
	manager.StopAll()

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, events)
}

func TestJobManager_StartFailureStopsStartedJobs(t *testing.T) {
	var events []string
	manager := NewJobManager(
		fakeJob{name: "a", events: &events},
		fakeJob{name: "b", startErr: errors.New("boom"), events: &events},
	)

	err := manager.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start b")
	assert.Equal(t, []string{"start a", "start b", "stop a"}, events)
}
