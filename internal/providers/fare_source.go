package providers

import (
	"context"
	"fmt"

	"farewatch/internal/models/dtos"
)

// FareSource defines the interface to the upstream flight-search provider.
// The wire protocol is opaque to the rest of the system: a search returns
// zero or more candidate fares for one route and date.
type FareSource interface {
	// SearchFares queries the provider for one departure date using the
	// supplied credential. A zero-length fare list is not an error.
	SearchFares(ctx context.Context, origin, destination, date, credential string) (*dtos.FareSearchResponse, int, error)
}

// ProviderError represents a provider-specific error
type ProviderError struct {
	Code    string
	Message string
	Details string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
