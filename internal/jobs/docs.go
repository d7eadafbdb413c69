// Package jobs provides scheduled background tasks for the laundry service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// 1. OutboxRelayJob - publishes pending order events from the outbox table to Kafka
//
// # Usage
//
//	relay := jobs.NewOutboxRelayJob(relayHandler, jobs.OutboxRelayConfig{
//		Schedule:  "*/5 * * * * *",
//		BatchSize: 100,
//	}, metrics, logger)
//
//	jobManager := jobs.NewJobManager(relay)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A failed run is logged and retried on the next tick; the outbox keeps the rows
// - Runs never overlap: a tick is skipped while the previous run is still going
// - Failed job starts will stop any already running jobs
package jobs
