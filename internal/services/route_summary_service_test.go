package services

import (
	"context"
	"testing"
	"time"

	"farewatch/internal/common"
	"farewatch/internal/models/entities"
)

func TestRouteSummaries(t *testing.T) {
	store := &fakeStore{}
	base := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	seedObservations(store,
		entities.FareObservation{Airline: "JetBlue", Origin: "JFK", Destination: "LAX", Price: 200, ScrapedAt: base},
		entities.FareObservation{Airline: "JSX", Origin: "BUR", Destination: "LAS", Price: 250, ScrapedAt: base.Add(time.Minute)},
		entities.FareObservation{Airline: "JetBlue", Origin: "JFK", Destination: "LAX", Price: 150, ScrapedAt: base.Add(2 * time.Minute)},
		entities.FareObservation{Airline: "JetBlue", Origin: "JFK", Destination: "LAX", Price: 180, ScrapedAt: base.Add(3 * time.Minute)},
	)

	svc := NewRouteSummaryService(store, nil)

	summaries, err := svc.RouteSummaries(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("Expected 2 routes, got %d", len(summaries))
	}

	jfk := summaries[0]
	if jfk.Origin != "JFK" || jfk.Destination != "LAX" {
		t.Fatalf("Expected JFK-LAX first, got %s-%s", jfk.Origin, jfk.Destination)
	}
	if jfk.Observations != 3 {
		t.Errorf("Expected 3 observations, got %d", jfk.Observations)
	}
	if jfk.LowestPrice != 150 {
		t.Errorf("Expected lowest 150, got %.0f", jfk.LowestPrice)
	}
	if jfk.LatestPrice != 180 {
		t.Errorf("Expected latest 180, got %.0f", jfk.LatestPrice)
	}
}

func TestRouteSummaries_CachedAcrossWrites(t *testing.T) {
	store := &fakeStore{}
	seedObservations(store,
		entities.FareObservation{Airline: "JSX", Origin: "BUR", Destination: "LAS", Price: 250},
	)

	cache := common.NewCacheService(60, 120)
	svc := NewRouteSummaryService(store, cache)

	first, err := svc.RouteSummaries(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// New write lands after the summary was cached
	seedObservations(store,
		entities.FareObservation{Airline: "JSX", Origin: "BUR", Destination: "LAS", Price: 100},
	)

	second, err := svc.RouteSummaries(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if second[0].LowestPrice != first[0].LowestPrice {
		t.Error("Expected cached summary until the TTL expires")
	}
}

func TestChartSeries_MinPricePerDate(t *testing.T) {
	store := &fakeStore{}
	seedObservations(store,
		entities.FareObservation{Airline: "JetBlue", Origin: "JFK", Destination: "LAX", DepartureDate: "2024-04-12", Price: 200},
		entities.FareObservation{Airline: "JetBlue", Origin: "JFK", Destination: "LAX", DepartureDate: "2024-04-12", Price: 150},
		entities.FareObservation{Airline: "JetBlue", Origin: "JFK", Destination: "LAX", DepartureDate: "2024-04-13", Price: 220},
		entities.FareObservation{Airline: "JSX", Origin: "JFK", Destination: "LAX", DepartureDate: "2024-04-12", Price: 300},
		entities.FareObservation{Airline: "JetBlue", Origin: "JFK", Destination: "LAX", DepartureDate: "", Price: 10},
	)

	svc := NewRouteSummaryService(store, nil)

	series, err := svc.ChartSeries(context.Background(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("Expected 2 series, got %d", len(series))
	}

	jetblue := series[0]
	if jetblue.Airline != "JetBlue" {
		t.Fatalf("Expected JetBlue series first, got %s", jetblue.Airline)
	}
	if len(jetblue.Points) != 2 {
		t.Errorf("Expected 2 dated points, got %d", len(jetblue.Points))
	}
	if jetblue.Points["2024-04-12"] != 150 {
		t.Errorf("Expected min price 150 for 2024-04-12, got %.0f", jetblue.Points["2024-04-12"])
	}
	if jetblue.Points["2024-04-13"] != 220 {
		t.Errorf("Expected 220 for 2024-04-13, got %.0f", jetblue.Points["2024-04-13"])
	}
}
