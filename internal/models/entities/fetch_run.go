package entities

import "time"

// FetchRun is the audit record of one orchestrator invocation. Stored via
// sqlx; one row per FetchRoute call regardless of outcome.
type FetchRun struct {
	ID           string    `db:"id" json:"id"`
	Origin       string    `db:"origin" json:"origin"`
	Destination  string    `db:"destination" json:"destination"`
	BaseDate     string    `db:"base_date" json:"baseDate"`
	FlexDays     int       `db:"flex_days" json:"flexDays"`
	TriggerKind  string    `db:"trigger_kind" json:"trigger"` // "scheduled" or "manual"
	DatesQueried int       `db:"dates_queried" json:"datesQueried"`
	FaresStored  int       `db:"fares_stored" json:"faresStored"`
	ErrorCount   int       `db:"error_count" json:"errorCount"`
	Status       string    `db:"status" json:"status"`
	StartedAt    time.Time `db:"started_at" json:"startedAt"`
	FinishedAt   time.Time `db:"finished_at" json:"finishedAt"`
}

const (
	FetchRunStatusOk       = "ok"
	FetchRunStatusPartial  = "partial"
	FetchRunStatusNoCreds  = "no_credentials"
	FetchRunStatusFailed   = "failed"
	FetchTriggerScheduled  = "scheduled"
	FetchTriggerManual     = "manual"
)
