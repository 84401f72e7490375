package dtos

import "time"

// APIResponse is the common JSON envelope for all handlers.
type APIResponse[T any] struct {
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Data      *T        `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// FetchReport summarizes one orchestrator run for the caller. Partial
// per-date failures still count as an overall success.
type FetchReport struct {
	Origin       string   `json:"origin"`
	Destination  string   `json:"destination"`
	DatesQueried []string `json:"datesQueried"`
	FaresStored  int      `json:"faresStored"`
	DateErrors   int      `json:"dateErrors"`
}

// ChartSeries is one airline's min-price-per-date series for the dashboard.
type ChartSeries struct {
	Airline string             `json:"airline"`
	Points  map[string]float64 `json:"points"` // departure date -> min price
}

// RouteSummary is one row of the dashboard route listing.
type RouteSummary struct {
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	Observations int       `json:"observations"`
	LatestPrice  float64   `json:"latestPrice"`
	LowestPrice  float64   `json:"lowestPrice"`
	LastScraped  time.Time `json:"lastScraped"`
}

// DashboardLinkResponse carries a presigned single-use dashboard URL.
type DashboardLinkResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// HealthResponse reports process and database health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}
