package services

import "fmt"

// ConfigurationError aborts a fetch when no upstream credential is
// configured. It fails the one call only; nothing else shuts down.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// UpstreamFetchError is a per-date transport or parsing failure inside the
// flex window. It is logged and isolated; sibling dates keep going.
type UpstreamFetchError struct {
	Date string
	Err  error
}

func (e *UpstreamFetchError) Error() string {
	return fmt.Sprintf("upstream fetch failed for %s: %v", e.Date, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error {
	return e.Err
}
