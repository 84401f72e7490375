package dtos

// Insight is a derived recommendation, recomputed on every read and never
// persisted. Kind is one of "buy", "wait", "flex".
type Insight struct {
	ID          int     `json:"id"`
	Kind        string  `json:"kind"`
	Airline     string  `json:"airline"`
	Price       float64 `json:"price"`
	Title       string  `json:"title"`
	Description string  `json:"description"`

	// Savings is set on flex insights only: amount saved vs the most
	// expensive observed date.
	Savings float64 `json:"savings,omitempty"`

	// Provenance for display
	FlightDetail string `json:"flightDetail,omitempty"`
	Date         string `json:"date,omitempty"`
	SearchURL    string `json:"searchUrl,omitempty"`
}
