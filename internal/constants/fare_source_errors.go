package constants

// Fare Source Error Codes
// These constants define specific error scenarios for the upstream fare API

const (
	ErrCodeInvalidAPIKey  = "INVALID_API_KEY"
	ErrCodeNoCredential   = "NO_CREDENTIAL"
	ErrCodeRateLimited    = "RATE_LIMITED"
	ErrCodeNetworkError   = "NETWORK_ERROR"
	ErrCodeBadFareFormat  = "BAD_FARE_FORMAT"
	ErrCodeRouteNotFound  = "ROUTE_NOT_FOUND"
	ErrCodeUpstreamFailed = "UPSTREAM_FAILED"
)

// Human-readable messages corresponding to error codes

var FareSourceErrorMessages = map[string]string{
	ErrCodeInvalidAPIKey:  "The fare API key is invalid or has been revoked",
	ErrCodeNoCredential:   "No fare API credential is configured",
	ErrCodeRateLimited:    "Rate limit exceeded on the fare API. Please try again later",
	ErrCodeNetworkError:   "Unable to connect to the fare API",
	ErrCodeBadFareFormat:  "The fare API returned data in an unexpected format",
	ErrCodeRouteNotFound:  "The fare API has no data for this route",
	ErrCodeUpstreamFailed: "The fare API request failed",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := FareSourceErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}
