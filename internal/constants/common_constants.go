package constants

type APIStatus string

const (
	APIStatusOk    APIStatus = "success"
	APIStatusError APIStatus = "error"
)

// DefaultTrackedCarriers are the carrier-name substrings retained by the
// fetch filter when TRACKED_CARRIERS is not configured.
var DefaultTrackedCarriers = []string{"JetBlue", "JSX"}

const (
	// DefaultRecentWindow caps how many observations feed insight derivation.
	DefaultRecentWindow = 100

	// MinFlexSavings is the price gap (USD) a flexible-date insight must beat.
	MinFlexSavings = 20.0
)

// Insight kinds
const (
	InsightKindBuy  = "buy"
	InsightKindWait = "wait"
	InsightKindFlex = "flex"
)

// Scan queue stream name
const ScanQueueStream = "farewatch:scan_queue"
