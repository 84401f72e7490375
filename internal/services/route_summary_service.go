package services

import (
	"context"
	"fmt"
	"time"

	"farewatch/internal/common"
	"farewatch/internal/db/repositories"
	"farewatch/internal/models/dtos"
)

// RouteSummaryService builds the dashboard read models. These are pure
// consumers of store history; summaries are cached briefly since the
// dashboard polls, insight derivation stays uncached.
type RouteSummaryService struct {
	store ObservationStore
	cache *common.CacheService
}

func NewRouteSummaryService(store ObservationStore, cache *common.CacheService) *RouteSummaryService {
	return &RouteSummaryService{store: store, cache: cache}
}

const routeSummaryCacheKey = "dashboard:route_summaries"

// RouteSummaries lists every observed route with latest and lowest prices.
func (svc *RouteSummaryService) RouteSummaries(ctx context.Context) ([]dtos.RouteSummary, error) {
	if svc.cache != nil {
		if val, found := svc.cache.Get(routeSummaryCacheKey); found {
			if summaries, ok := val.([]dtos.RouteSummary); ok {
				return summaries, nil
			}
		}
	}

	history, err := svc.store.QueryHistory(ctx, nil)
	if err != nil {
		return nil, err
	}

	index := make(map[string]*dtos.RouteSummary)
	var order []string

	// History is scraped_at ascending, so the last write wins for
	// LatestPrice and LastScraped.
	for _, obs := range history {
		key := fmt.Sprintf("%s-%s", obs.Origin, obs.Destination)
		s, ok := index[key]
		if !ok {
			s = &dtos.RouteSummary{
				Origin:      obs.Origin,
				Destination: obs.Destination,
				LowestPrice: obs.Price,
			}
			index[key] = s
			order = append(order, key)
		}
		s.Observations++
		s.LatestPrice = obs.Price
		s.LastScraped = obs.ScrapedAt
		if obs.Price < s.LowestPrice {
			s.LowestPrice = obs.Price
		}
	}

	summaries := make([]dtos.RouteSummary, 0, len(order))
	for _, key := range order {
		summaries = append(summaries, *index[key])
	}

	if svc.cache != nil {
		svc.cache.Set(routeSummaryCacheKey, summaries, 60*time.Second)
	}
	return summaries, nil
}

// ChartSeries returns each airline's minimum price per departure date for
// one route, the shape the dashboard chart renders directly.
func (svc *RouteSummaryService) ChartSeries(ctx context.Context, filter *repositories.RouteFilter) ([]dtos.ChartSeries, error) {
	history, err := svc.store.QueryHistory(ctx, filter)
	if err != nil {
		return nil, err
	}

	index := make(map[string]*dtos.ChartSeries)
	var order []string

	for _, obs := range history {
		if obs.DepartureDate == "" {
			continue
		}
		s, ok := index[obs.Airline]
		if !ok {
			s = &dtos.ChartSeries{Airline: obs.Airline, Points: make(map[string]float64)}
			index[obs.Airline] = s
			order = append(order, obs.Airline)
		}
		if cur, seen := s.Points[obs.DepartureDate]; !seen || obs.Price < cur {
			s.Points[obs.DepartureDate] = obs.Price
		}
	}

	series := make([]dtos.ChartSeries, 0, len(order))
	for _, airline := range order {
		series = append(series, *index[airline])
	}
	return series, nil
}
