package services

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"sort"

	"farewatch/internal/constants"
	"farewatch/internal/db/repositories"
	"farewatch/internal/metrics"
	"farewatch/internal/models/dtos"
	"farewatch/internal/models/entities"
)

// InsightService derives buy/wait/flex recommendations from the most
// recent observations of a route. Derivation is a pure function of the
// queried window: nothing is persisted, nothing is cached, repeated calls
// with no intervening writes yield identical output.
type InsightService struct {
	store   ObservationStore
	metrics *metrics.MetricsRegistry
}

// NewInsightService creates a new insight service. reg may be nil (tests).
func NewInsightService(store ObservationStore, reg *metrics.MetricsRegistry) *InsightService {
	return &InsightService{store: store, metrics: reg}
}

// airlineGroup collects one airline's observations in recent-first order.
type airlineGroup struct {
	airline string
	obs     []entities.FareObservation
}

// DeriveInsights computes the ordered insight list for a route (or
// globally when filter is nil). Flex insights surface first, then the
// per-airline best-price insights in discovery order; IDs are sequential
// from 1 across the merged list.
func (svc *InsightService) DeriveInsights(ctx context.Context, filter *repositories.RouteFilter) ([]dtos.Insight, error) {
	window, err := svc.store.QueryRecent(ctx, filter, constants.DefaultRecentWindow)
	if err != nil {
		return nil, err
	}

	if len(window) == 0 {
		return []dtos.Insight{}, nil
	}

	groups := groupByAirline(window)

	airlineInsights := make([]dtos.Insight, 0, len(groups))
	for _, g := range groups {
		airlineInsights = append(airlineInsights, buildAirlineInsight(g))
	}

	var flexInsights []dtos.Insight
	for _, g := range groups {
		if ins, ok := buildFlexInsight(g); ok {
			flexInsights = append(flexInsights, ins)
		}
	}

	// Flex entries display ahead of buy/wait by design.
	result := make([]dtos.Insight, 0, len(flexInsights)+len(airlineInsights))
	result = append(result, flexInsights...)
	result = append(result, airlineInsights...)
	for i := range result {
		result[i].ID = i + 1
	}

	if svc.metrics != nil {
		svc.metrics.InsightsComputedTotal.Add(float64(len(result)))
	}
	return result, nil
}

// groupByAirline buckets observations by airline, preserving the order in
// which each airline is first seen in the window.
func groupByAirline(window []entities.FareObservation) []*airlineGroup {
	index := make(map[string]*airlineGroup)
	var groups []*airlineGroup

	for _, obs := range window {
		g, ok := index[obs.Airline]
		if !ok {
			g = &airlineGroup{airline: obs.Airline}
			index[obs.Airline] = g
			groups = append(groups, g)
		}
		g.obs = append(g.obs, obs)
	}
	return groups
}

// buildAirlineInsight classifies one airline's window against fixed 10%
// bands around the rounded mean. Ties at exactly 0.9x or 1.1x fall into
// the "Best Price Found" branch.
func buildAirlineInsight(g *airlineGroup) dtos.Insight {
	minPrice := g.obs[0].Price
	sum := 0.0
	cheapest := g.obs[0]

	for _, obs := range g.obs {
		sum += obs.Price
		if obs.Price < minPrice {
			minPrice = obs.Price
			cheapest = obs
		}
	}
	avgPrice := math.Round(sum / float64(len(g.obs)))

	route := fmt.Sprintf("%s-%s", cheapest.Origin, cheapest.Destination)

	ins := dtos.Insight{
		Airline:      g.airline,
		Price:        minPrice,
		Date:         cheapest.DepartureDate,
		FlightDetail: flightDetail(cheapest),
		SearchURL:    searchURL(cheapest),
	}

	switch {
	case minPrice < 0.9*avgPrice:
		pctBelow := int(math.Round((1 - minPrice/avgPrice) * 100))
		ins.Kind = constants.InsightKindBuy
		ins.Title = "Strong Buy Recommendation"
		ins.Description = fmt.Sprintf("%s %s is $%.0f, %d%% below the recent average of $%.0f. Good time to book.",
			g.airline, route, minPrice, pctBelow, avgPrice)
	case minPrice > 1.1*avgPrice:
		ins.Kind = constants.InsightKindWait
		ins.Title = "Hold / Wait"
		ins.Description = fmt.Sprintf("%s %s is $%.0f, above the recent average of $%.0f. Prices may come back down.",
			g.airline, route, minPrice, avgPrice)
	default:
		ins.Kind = constants.InsightKindBuy
		ins.Title = "Best Price Found"
		ins.Description = fmt.Sprintf("%s %s best observed price is $%.0f (recent average $%.0f).",
			g.airline, route, minPrice, avgPrice)
	}

	return ins
}

// buildFlexInsight compares the cheapest and most expensive departure
// dates for one airline. Needs at least 2 distinct dates and a gap above
// the savings floor.
func buildFlexInsight(g *airlineGroup) (dtos.Insight, bool) {
	type dateBest struct {
		date string
		obs  entities.FareObservation
	}

	bestByDate := make(map[string]entities.FareObservation)
	var order []string

	for _, obs := range g.obs {
		if obs.DepartureDate == "" {
			continue
		}
		cur, seen := bestByDate[obs.DepartureDate]
		if !seen {
			order = append(order, obs.DepartureDate)
			bestByDate[obs.DepartureDate] = obs
		} else if obs.Price < cur.Price {
			bestByDate[obs.DepartureDate] = obs
		}
	}

	if len(order) < 2 {
		return dtos.Insight{}, false
	}

	entries := make([]dateBest, 0, len(order))
	for _, d := range order {
		entries = append(entries, dateBest{date: d, obs: bestByDate[d]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].obs.Price < entries[j].obs.Price
	})

	cheapest := entries[0]
	priciest := entries[len(entries)-1]
	if cheapest.date == priciest.date {
		// All dates tie; nothing to trade off.
		return dtos.Insight{}, false
	}

	savings := priciest.obs.Price - cheapest.obs.Price
	if savings <= constants.MinFlexSavings {
		return dtos.Insight{}, false
	}

	ins := dtos.Insight{
		Kind:         constants.InsightKindFlex,
		Airline:      g.airline,
		Price:        cheapest.obs.Price,
		Savings:      savings,
		Title:        "Flexible Date Savings",
		Date:         cheapest.date,
		FlightDetail: flightDetail(cheapest.obs),
		SearchURL:    searchURL(cheapest.obs),
		Description: fmt.Sprintf("Flying %s on %s instead of %s saves $%.0f ($%.0f vs $%.0f).",
			g.airline, cheapest.date, priciest.date, savings, cheapest.obs.Price, priciest.obs.Price),
	}
	return ins, true
}

// flightDetail renders "{dep}–{arr} nonstop" or "{dep}–{arr} (n stop)".
// Empty when departure/arrival times are absent.
func flightDetail(obs entities.FareObservation) string {
	if obs.DepartureTime == "" || obs.ArrivalTime == "" {
		return ""
	}
	if obs.StopCount == 0 {
		return fmt.Sprintf("%s–%s nonstop", obs.DepartureTime, obs.ArrivalTime)
	}
	return fmt.Sprintf("%s–%s (%d stop)", obs.DepartureTime, obs.ArrivalTime, obs.StopCount)
}

// searchURL builds the deep link from the cheapest observation's route and
// date.
func searchURL(obs entities.FareObservation) string {
	q := fmt.Sprintf("flights from %s to %s on %s", obs.Origin, obs.Destination, obs.DepartureDate)
	return "https://www.google.com/travel/flights?q=" + url.QueryEscape(q)
}
