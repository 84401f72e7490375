package db

import (
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var DB *sqlx.DB

const fetchRunsSchema = `
CREATE TABLE IF NOT EXISTS fetch_runs (
	id            uuid PRIMARY KEY,
	origin        varchar(4) NOT NULL,
	destination   varchar(4) NOT NULL,
	base_date     varchar(10) NOT NULL,
	flex_days     integer NOT NULL DEFAULT 0,
	trigger_kind  varchar(16) NOT NULL,
	dates_queried integer NOT NULL DEFAULT 0,
	fares_stored  integer NOT NULL DEFAULT 0,
	error_count   integer NOT NULL DEFAULT 0,
	status        varchar(16) NOT NULL,
	started_at    timestamptz NOT NULL,
	finished_at   timestamptz NOT NULL
)`

// InitPostgres connects sqlx to Postgres, retrying while the database
// container comes up, and ensures the fetch_runs audit table exists.
func InitPostgres(dsn string) error {
	var err error

	for i := 0; i < 10; i++ {
		DB, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			_, err = DB.Exec(fetchRunsSchema)
			return err
		}
		time.Sleep(500 * time.Millisecond)
	}
	return err
}
