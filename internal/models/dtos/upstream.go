package dtos

// Shapes returned by the upstream fare search API. The wire protocol is
// treated as opaque beyond this: a search yields zero or more candidate
// fares, each a chain of legs with a total price.

// FareSearchResponse is the top-level upstream payload.
type FareSearchResponse struct {
	Fares []CandidateFare `json:"fares"`
}

// CandidateFare is one priced itinerary candidate.
type CandidateFare struct {
	Airline       string    `json:"airline"`
	Price         float64   `json:"price"`
	Legs          []FareLeg `json:"legs"`
	TotalDuration int       `json:"totalDuration"` // minutes
	BookingToken  string    `json:"bookingToken,omitempty"`
}

// FareLeg is a single flight segment of a candidate fare.
type FareLeg struct {
	Airline       string `json:"airline"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	FlightNumber  string `json:"flightNumber"`
}
