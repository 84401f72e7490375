package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"farewatch/internal/common"
	"farewatch/internal/db/repositories"
	"farewatch/internal/logging"
	"farewatch/internal/metrics"
	"farewatch/internal/models/dtos"
	"farewatch/internal/models/entities"
	"farewatch/internal/providers"

	"github.com/google/uuid"
)

// ObservationStore is the slice of the observation repository the
// orchestrator needs.
type ObservationStore interface {
	Record(ctx context.Context, obs *entities.FareObservation) error
	QueryHistory(ctx context.Context, filter *repositories.RouteFilter) ([]entities.FareObservation, error)
	QueryRecent(ctx context.Context, filter *repositories.RouteFilter, limit int) ([]entities.FareObservation, error)
}

// FetchRunRecorder persists the per-invocation audit row.
type FetchRunRecorder interface {
	RecordRun(ctx context.Context, run *entities.FetchRun) error
}

// FetchService expands a target date into a flex window, queries the
// upstream source per date with rate-limit-friendly pacing, filters to
// tracked carriers and appends keepers to the store.
//
// The per-date loop is deliberately sequential; see Pacer. Do not
// parallelize it without re-deriving the pacing contract with the
// upstream API.
type FetchService struct {
	store   ObservationStore
	runs    FetchRunRecorder
	source  providers.FareSource
	ring    *common.KeyRing
	matcher *CarrierMatcher
	pacing  time.Duration
	metrics *metrics.MetricsRegistry
}

// NewFetchService wires the orchestrator. runs and reg may be nil (tests).
func NewFetchService(
	store ObservationStore,
	runs FetchRunRecorder,
	source providers.FareSource,
	ring *common.KeyRing,
	matcher *CarrierMatcher,
	pacing time.Duration,
	reg *metrics.MetricsRegistry,
) *FetchService {
	return &FetchService{
		store:   store,
		runs:    runs,
		source:  source,
		ring:    ring,
		matcher: matcher,
		pacing:  pacing,
		metrics: reg,
	}
}

// ExpandDates builds the flex window around a base date: the base itself,
// then -1, +1, -2, +2 ... out to flexDays. 2*flexDays+1 dates total.
func ExpandDates(baseDate string, flexDays int) ([]string, error) {
	base, err := time.Parse("2006-01-02", baseDate)
	if err != nil {
		return nil, fmt.Errorf("invalid base date %q: %w", baseDate, err)
	}

	if flexDays < 0 {
		flexDays = 0
	}

	dates := []string{baseDate}
	for i := 1; i <= flexDays; i++ {
		dates = append(dates,
			base.AddDate(0, 0, -i).Format("2006-01-02"),
			base.AddDate(0, 0, i).Format("2006-01-02"),
		)
	}
	return dates, nil
}

// FetchRoute runs one flexible-date fetch for a route. Per-date upstream
// failures are logged and isolated; the call still succeeds with partial
// data. An empty credential ring aborts the whole call.
func (svc *FetchService) FetchRoute(ctx context.Context, origin, destination, baseDate string, flexDays int, trigger string) (*dtos.FetchReport, error) {
	origin = strings.ToUpper(strings.TrimSpace(origin))
	destination = strings.ToUpper(strings.TrimSpace(destination))

	dates, err := ExpandDates(baseDate, flexDays)
	if err != nil {
		return nil, err
	}

	startedAt := time.Now().UTC()
	report := &dtos.FetchReport{
		Origin:       origin,
		Destination:  destination,
		DatesQueried: dates,
	}

	log := logging.WithRoute(origin, destination)
	log.Infow("Starting flex fetch", "base_date", baseDate, "flex_days", flexDays, "window", len(dates), "trigger", trigger)

	pacer := NewPacer(svc.pacing)

	for _, date := range dates {
		// Pace only when the window has more than one date. The first
		// Wait consumes the limiter's initial token and returns
		// immediately; every later date blocks for the pacing interval.
		if len(dates) > 1 {
			if err := pacer.Wait(ctx); err != nil {
				svc.recordRun(ctx, report, baseDate, flexDays, trigger, entities.FetchRunStatusFailed, startedAt)
				return nil, err
			}
		}

		credential, ok := svc.ring.Next()
		if !ok {
			log.Warnw("No fare API credential configured, aborting fetch")
			svc.recordRun(ctx, report, baseDate, flexDays, trigger, entities.FetchRunStatusNoCreds, startedAt)
			return nil, &ConfigurationError{Message: "no fare API credential configured"}
		}

		resp, _, err := svc.source.SearchFares(ctx, origin, destination, date, credential)
		if err != nil {
			dateErr := &UpstreamFetchError{Date: date, Err: err}
			log.Warnw("Upstream fetch failed for date", "date", date, "error", dateErr.Error())
			report.DateErrors++
			if svc.metrics != nil {
				svc.metrics.UpstreamErrorsTotal.Inc()
			}
			continue
		}

		stored, err := svc.storeFares(ctx, origin, destination, date, resp.Fares)
		if err != nil {
			// Storage failures are not swallowed: abort and surface.
			svc.recordRun(ctx, report, baseDate, flexDays, trigger, entities.FetchRunStatusFailed, startedAt)
			return nil, err
		}
		report.FaresStored += stored
	}

	status := entities.FetchRunStatusOk
	if report.DateErrors > 0 {
		status = entities.FetchRunStatusPartial
	}
	svc.recordRun(ctx, report, baseDate, flexDays, trigger, status, startedAt)

	log.Infow("Flex fetch complete", "fares_stored", report.FaresStored, "date_errors", report.DateErrors)
	return report, nil
}

// FetchRoundTrip fetches the outbound leg and, when a return date is
// supplied, the swapped return leg with the same flex window. Both legs
// draw credentials from the same rotation.
func (svc *FetchService) FetchRoundTrip(ctx context.Context, origin, destination, outDate, returnDate string, flexDays int, trigger string) (*dtos.FetchReport, error) {
	report, err := svc.FetchRoute(ctx, origin, destination, outDate, flexDays, trigger)
	if err != nil {
		return nil, err
	}

	if returnDate == "" {
		return report, nil
	}

	ret, err := svc.FetchRoute(ctx, destination, origin, returnDate, flexDays, trigger)
	if err != nil {
		return nil, err
	}

	report.DatesQueried = append(report.DatesQueried, ret.DatesQueried...)
	report.FaresStored += ret.FaresStored
	report.DateErrors += ret.DateErrors
	return report, nil
}

// storeFares normalizes, filters and appends candidate fares for one date.
func (svc *FetchService) storeFares(ctx context.Context, origin, destination, date string, fares []dtos.CandidateFare) (int, error) {
	stored := 0

	for _, fare := range fares {
		obs := normalizeFare(origin, destination, date, fare)

		if !svc.matcher.Matches(obs.Airline) {
			continue
		}

		if err := svc.store.Record(ctx, obs); err != nil {
			var vErr *repositories.ValidationError
			if errors.As(err, &vErr) {
				logging.Warn("Dropping malformed upstream fare", "error", vErr.Error())
				continue
			}
			return stored, err
		}

		stored++
		if svc.metrics != nil {
			svc.metrics.ObservationsRecordedTotal.Inc()
		}
	}

	return stored, nil
}

// normalizeFare maps a candidate fare to an observation: first-leg airline
// and departure, last-leg arrival, stops = leg count - 1.
func normalizeFare(origin, destination, date string, fare dtos.CandidateFare) *entities.FareObservation {
	obs := &entities.FareObservation{
		Airline:          fare.Airline,
		Origin:           origin,
		Destination:      destination,
		DepartureDate:    date,
		Price:            fare.Price,
		BookingReference: fare.BookingToken,
	}

	if fare.TotalDuration > 0 {
		obs.DurationMinutes.Int64 = int64(fare.TotalDuration)
		obs.DurationMinutes.Valid = true
	}

	if len(fare.Legs) > 0 {
		first := fare.Legs[0]
		last := fare.Legs[len(fare.Legs)-1]

		if first.Airline != "" {
			obs.Airline = first.Airline
		}
		obs.DepartureTime = first.DepartureTime
		obs.ArrivalTime = last.ArrivalTime
		obs.FlightNumber = first.FlightNumber
		obs.StopCount = len(fare.Legs) - 1
	}

	return obs
}

func (svc *FetchService) recordRun(ctx context.Context, report *dtos.FetchReport, baseDate string, flexDays int, trigger, status string, startedAt time.Time) {
	if svc.runs == nil {
		return
	}

	run := &entities.FetchRun{
		ID:           uuid.New().String(),
		Origin:       report.Origin,
		Destination:  report.Destination,
		BaseDate:     baseDate,
		FlexDays:     flexDays,
		TriggerKind:  trigger,
		DatesQueried: len(report.DatesQueried),
		FaresStored:  report.FaresStored,
		ErrorCount:   report.DateErrors,
		Status:       status,
		StartedAt:    startedAt,
		FinishedAt:   time.Now().UTC(),
	}

	if err := svc.runs.RecordRun(ctx, run); err != nil {
		logging.Warn("Failed to record fetch run", "error", err.Error())
	}
	if svc.metrics != nil {
		svc.metrics.FetchRunsTotal.WithLabelValues(status).Inc()
	}
}
