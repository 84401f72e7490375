package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"farewatch/internal/constants"
	"farewatch/internal/models/dtos"
)

func TestFareAPIProvider_SearchFares_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("Expected GET request, got %s", r.Method)
		}

		q := r.URL.Query()
		if q.Get("departure_id") != "JFK" {
			t.Errorf("Expected departure_id JFK, got %s", q.Get("departure_id"))
		}
		if q.Get("arrival_id") != "LAX" {
			t.Errorf("Expected arrival_id LAX, got %s", q.Get("arrival_id"))
		}
		if q.Get("api_key") != "test-key" {
			t.Errorf("Expected api_key test-key, got %s", q.Get("api_key"))
		}

		response := dtos.FareSearchResponse{
			Fares: []dtos.CandidateFare{
				{
					Airline:       "JetBlue Airways",
					Price:         189.0,
					TotalDuration: 365,
					Legs: []dtos.FareLeg{
						{Airline: "JetBlue Airways", DepartureTime: "08:15", ArrivalTime: "11:20", FlightNumber: "B6 623"},
					},
				},
			},
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	provider := NewFareAPIProvider(server.URL)

	result, status, err := provider.SearchFares(context.Background(), "JFK", "LAX", "2024-04-12", "test-key")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("Expected status 200, got %d", status)
	}
	if len(result.Fares) != 1 {
		t.Fatalf("Expected 1 fare, got %d", len(result.Fares))
	}
	if result.Fares[0].Airline != "JetBlue Airways" {
		t.Errorf("Expected JetBlue Airways, got %s", result.Fares[0].Airline)
	}
}

func TestFareAPIProvider_SearchFares_EmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(dtos.FareSearchResponse{})
	}))
	defer server.Close()

	provider := NewFareAPIProvider(server.URL)

	result, _, err := provider.SearchFares(context.Background(), "JFK", "LAX", "2024-04-12", "test-key")
	if err != nil {
		t.Fatalf("Expected no error for empty result, got %v", err)
	}
	if len(result.Fares) != 0 {
		t.Errorf("Expected 0 fares, got %d", len(result.Fares))
	}
}

func TestFareAPIProvider_SearchFares_NoCredential(t *testing.T) {
	provider := NewFareAPIProvider("http://unused.invalid")

	_, status, err := provider.SearchFares(context.Background(), "JFK", "LAX", "2024-04-12", "")
	if err == nil {
		t.Fatal("Expected error for empty credential")
	}
	if status != 0 {
		t.Errorf("Expected status 0, got %d", status)
	}

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("Expected ProviderError, got %T", err)
	}
	if provErr.Code != constants.ErrCodeNoCredential {
		t.Errorf("Expected code %s, got %s", constants.ErrCodeNoCredential, provErr.Code)
	}
}

func TestFareAPIProvider_SearchFares_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": "rate limit exceeded"}`))
	}))
	defer server.Close()

	provider := NewFareAPIProvider(server.URL)

	_, status, err := provider.SearchFares(context.Background(), "JFK", "LAX", "2024-04-12", "test-key")
	if err == nil {
		t.Fatal("Expected error for 429 response")
	}
	if status != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", status)
	}

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("Expected ProviderError, got %T", err)
	}
	if provErr.Code != constants.ErrCodeRateLimited {
		t.Errorf("Expected code %s, got %s", constants.ErrCodeRateLimited, provErr.Code)
	}
}

func TestFareAPIProvider_SearchFares_BadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	provider := NewFareAPIProvider(server.URL)

	_, _, err := provider.SearchFares(context.Background(), "JFK", "LAX", "2024-04-12", "test-key")
	if err == nil {
		t.Fatal("Expected error for malformed payload")
	}

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("Expected ProviderError, got %T", err)
	}
	if provErr.Code != constants.ErrCodeBadFareFormat {
		t.Errorf("Expected code %s, got %s", constants.ErrCodeBadFareFormat, provErr.Code)
	}
}
