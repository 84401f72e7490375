package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"farewatch/internal/constants"
	"farewatch/internal/models/dtos"
)

// FareAPIProvider implements FareSource over the upstream flight-search
// HTTP API. Credentials are passed per call: the orchestrator owns the
// rotation, the provider owns the transport.
type FareAPIProvider struct {
	BaseURL string
	Client  *http.Client
}

var _ FareSource = (*FareAPIProvider)(nil)

// NewFareAPIProvider creates a new fare API provider
func NewFareAPIProvider(baseURL string) *FareAPIProvider {
	return &FareAPIProvider{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SearchFares queries the upstream API for candidate fares on one route
// and departure date.
func (p *FareAPIProvider) SearchFares(ctx context.Context, origin, destination, date, credential string) (*dtos.FareSearchResponse, int, error) {
	if origin == "" || destination == "" {
		return nil, 0, &ProviderError{
			Code:    constants.ErrCodeBadFareFormat,
			Message: "Origin and destination cannot be empty",
		}
	}

	if credential == "" {
		return nil, 0, &ProviderError{
			Code:    constants.ErrCodeNoCredential,
			Message: constants.GetErrorMessage(constants.ErrCodeNoCredential),
		}
	}

	q := url.Values{}
	q.Set("departure_id", origin)
	q.Set("arrival_id", destination)
	q.Set("outbound_date", date)
	q.Set("api_key", credential)

	endpoint := fmt.Sprintf("%s?%s", p.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if err := p.handleHTTPError(resp, origin, destination); err != nil {
		return nil, resp.StatusCode, err
	}

	var result dtos.FareSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeBadFareFormat,
			Message: "Failed to decode response",
			Details: string(bodyBytes),
			Err:     err,
		}
	}

	return &result, resp.StatusCode, nil
}

// handleHTTPError converts HTTP errors to ProviderError
func (p *FareAPIProvider) handleHTTPError(resp *http.Response, origin, destination string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	bodyBytes, _ := io.ReadAll(resp.Body)
	body := string(bodyBytes)
	route := fmt.Sprintf("%s-%s", origin, destination)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &ProviderError{
			Code:    constants.ErrCodeInvalidAPIKey,
			Message: fmt.Sprintf("Authentication failed searching %s", route),
			Details: body,
		}
	case http.StatusNotFound:
		return &ProviderError{
			Code:    constants.ErrCodeRouteNotFound,
			Message: fmt.Sprintf("No fare data for route %s", route),
			Details: body,
		}
	case http.StatusTooManyRequests:
		return &ProviderError{
			Code:    constants.ErrCodeRateLimited,
			Message: constants.GetErrorMessage(constants.ErrCodeRateLimited),
			Details: body,
		}
	default:
		return &ProviderError{
			Code:    constants.ErrCodeUpstreamFailed,
			Message: fmt.Sprintf("HTTP %d searching %s: %s", resp.StatusCode, route, body),
			Details: body,
		}
	}
}
