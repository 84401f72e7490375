package api

import (
	"encoding/json"
	"net/http"
	"time"

	"farewatch/internal/models/dtos"

	"github.com/jmoiron/sqlx"
)

// HealthCheckHandler handles GET /healthCheck
func HealthCheckHandler(db *sqlx.DB, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		dbStatus := "ok"
		if err := db.Ping(); err != nil {
			status = "down"
			dbStatus = err.Error()
		}

		resp := dtos.HealthResponse{
			Status:   status,
			Database: dbStatus,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
