package services

import "strings"

// CarrierMatcher decides which candidate fares are worth storing. Fares
// whose airline identifier matches no tracked substring are discarded
// silently: not stored, not reported.
type CarrierMatcher struct {
	substrings []string
}

// NewCarrierMatcher builds a matcher over the configured carrier-name
// substrings. An empty list matches nothing.
func NewCarrierMatcher(substrings []string) *CarrierMatcher {
	m := &CarrierMatcher{}
	for _, s := range substrings {
		if s = strings.TrimSpace(s); s != "" {
			m.substrings = append(m.substrings, s)
		}
	}
	return m
}

// Matches reports whether the airline identifier contains any tracked
// carrier substring.
func (m *CarrierMatcher) Matches(airline string) bool {
	for _, s := range m.substrings {
		if strings.Contains(airline, s) {
			return true
		}
	}
	return false
}

// Tracked returns the configured substrings, for logging and debugging.
func (m *CarrierMatcher) Tracked() []string {
	return m.substrings
}
