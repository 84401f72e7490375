package constants

const (
	InsertFetchRun = `
	INSERT INTO fetch_runs (id, origin, destination, base_date, flex_days, trigger_kind, dates_queried, fares_stored, error_count, status, started_at, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	GetRecentFetchRuns = `
	SELECT * FROM fetch_runs ORDER BY started_at DESC LIMIT $1
	`

	GetFetchRunsByRoute = `
	SELECT * FROM fetch_runs WHERE UPPER(origin) = UPPER($1) AND UPPER(destination) = UPPER($2) ORDER BY started_at DESC LIMIT $3
	`
)
