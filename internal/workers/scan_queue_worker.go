package workers

import (
	"context"
	"errors"
	"time"

	"farewatch/internal/common"
	"farewatch/internal/logging"
	"farewatch/internal/services"
)

const (
	scanConsumerGroup = "scan-workers"
	scanConsumerName  = "scan-worker-1"
)

// ScanQueueWorker drains the scan queue one request at a time. A single
// consumer keeps scheduled fetches sequential: the pacing contract with
// the upstream API holds across routes, not just within one flex window.
type ScanQueueWorker struct {
	queue    *common.RedisQueueService
	fetchSvc *services.FetchService
	stream   string
}

// NewScanQueueWorker creates a new scan queue worker
func NewScanQueueWorker(queue *common.RedisQueueService, fetchSvc *services.FetchService, stream string) *ScanQueueWorker {
	return &ScanQueueWorker{
		queue:    queue,
		fetchSvc: fetchSvc,
		stream:   stream,
	}
}

// Run blocks processing scan requests until the context is cancelled.
func (w *ScanQueueWorker) Run(ctx context.Context) {
	if err := w.queue.CreateConsumerGroup(ctx, w.stream, scanConsumerGroup); err != nil {
		logging.Error("Failed to create scan consumer group", "error", err.Error())
		return
	}

	logging.Info("Scan queue worker started", "stream", w.stream)

	for {
		select {
		case <-ctx.Done():
			logging.Info("Scan queue worker shutting down")
			return
		default:
		}

		item, msgID, err := w.queue.DequeueScan(ctx, w.stream, scanConsumerGroup, scanConsumerName, 5*time.Second)
		if err != nil {
			logging.Error("Failed to dequeue scan", "error", err.Error())
			time.Sleep(time.Second)
			continue
		}
		if item == nil {
			continue
		}

		w.process(ctx, item)

		if err := w.queue.AckScan(ctx, w.stream, scanConsumerGroup, msgID); err != nil {
			logging.Warn("Failed to ack scan message", "message_id", msgID, "error", err.Error())
		}
	}
}

func (w *ScanQueueWorker) process(ctx context.Context, item *common.ScanQueueItem) {
	report, err := w.fetchSvc.FetchRoundTrip(ctx,
		item.Origin, item.Destination,
		item.BaseDate, item.ReturnDate,
		item.FlexDays, item.Trigger)

	if err != nil {
		var cfgErr *services.ConfigurationError
		if errors.As(err, &cfgErr) {
			// No credentials: nothing else in the queue will fare
			// better, but keep draining so the queue doesn't grow
			// unbounded.
			logging.Warn("Scan skipped, no credentials configured",
				"origin", item.Origin, "destination", item.Destination)
			return
		}
		logging.Error("Scan failed",
			"origin", item.Origin, "destination", item.Destination, "error", err.Error())
		return
	}

	logging.Info("Scan complete",
		"origin", item.Origin,
		"destination", item.Destination,
		"fares_stored", report.FaresStored,
		"date_errors", report.DateErrors)
}
