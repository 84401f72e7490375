// Package jobs wires up the cron job that periodically enqueues scans for
// all configured watch routes.
package jobs

import (
	"context"
	"fmt"
	"time"

	"farewatch/internal/common"
	"farewatch/internal/config"
	"farewatch/internal/constants"
	"farewatch/internal/logging"
	"farewatch/internal/models/entities"

	"github.com/robfig/cron/v3"
)

// FareScanJob enqueues one scan request per watch route on every tick.
// Actual fetching happens in the queue worker so scheduled scans never
// overlap each other; a manual API trigger may still run concurrently,
// which is safe because the store is append-only.
type FareScanJob struct {
	cron  *cron.Cron
	cfg   *config.Config
	queue *common.RedisQueueService
}

// NewFareScanJob creates a new scan job instance
func NewFareScanJob(cfg *config.Config, queue *common.RedisQueueService) *FareScanJob {
	return &FareScanJob{
		cron:  cron.New(),
		cfg:   cfg,
		queue: queue,
	}
}

// Start registers the cron entry and runs one scan cycle immediately so a
// fresh deployment has data without waiting for the first tick.
func (j *FareScanJob) Start(ctx context.Context) error {
	if len(j.cfg.WatchRoutes) == 0 {
		logging.Info("No watch routes configured, scheduled scans disabled")
		return nil
	}

	_, err := j.cron.AddFunc(j.cfg.ScanCronSpec, func() {
		j.Run(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	j.cron.Start()
	logging.Info("Scan job started", "spec", j.cfg.ScanCronSpec, "routes", len(j.cfg.WatchRoutes))

	go j.Run(ctx)
	return nil
}

// Stop gracefully shuts down the scheduler.
func (j *FareScanJob) Stop() {
	j.cron.Stop()
	logging.Info("Scan job stopped")
}

// Run enqueues one scan request per watch route.
func (j *FareScanJob) Run(ctx context.Context) {
	start := time.Now()
	enqueued := 0

	for _, wr := range j.cfg.WatchRoutes {
		baseDate := time.Now().UTC().AddDate(0, 0, wr.DaysAhead).Format("2006-01-02")

		item := &common.ScanQueueItem{
			Origin:      wr.Origin,
			Destination: wr.Destination,
			BaseDate:    baseDate,
			FlexDays:    wr.FlexDays,
			Trigger:     entities.FetchTriggerScheduled,
			EnqueuedAt:  time.Now().UTC().Format(time.RFC3339),
		}

		if err := j.queue.EnqueueScan(ctx, constants.ScanQueueStream, item); err != nil {
			logging.Error("Failed to enqueue scan",
				"origin", wr.Origin, "destination", wr.Destination, "error", err.Error())
			continue
		}
		enqueued++
	}

	logging.Info("Scan cycle enqueued",
		"routes", enqueued,
		"duration", time.Since(start).Truncate(time.Millisecond).String())
}
