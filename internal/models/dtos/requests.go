package dtos

import "time"

// ObservationRequest is the ingest payload for a single fare sighting.
type ObservationRequest struct {
	Airline          string     `json:"airline"`
	Origin           string     `json:"origin"`
	Destination      string     `json:"destination"`
	DepartureDate    string     `json:"departureDate"`
	Price            float64    `json:"price"`
	ScrapedAt        *time.Time `json:"scrapedAt,omitempty"`
	DepartureTime    string     `json:"departureTime,omitempty"`
	ArrivalTime      string     `json:"arrivalTime,omitempty"`
	DurationMinutes  *int       `json:"durationMinutes,omitempty"`
	FlightNumber     string     `json:"flightNumber,omitempty"`
	StopCount        int        `json:"stopCount,omitempty"`
	BookingReference string     `json:"bookingReference,omitempty"`
}

// FetchRequest triggers an on-demand flexible-date fetch.
type FetchRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	ReturnDate  string `json:"returnDate,omitempty"`
	FlexDays    int    `json:"flexDays"`
}

// DashboardLinkRequest asks for a presigned single-use dashboard URL.
type DashboardLinkRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	TTLMinutes  int    `json:"ttlMinutes,omitempty"`
}
