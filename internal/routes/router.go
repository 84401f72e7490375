package routes

import (
	"context"
	"net/http"
	"time"

	"farewatch/internal/api"
	"farewatch/internal/config"
	"farewatch/internal/constants"
	"farewatch/internal/db"
	"farewatch/internal/jobs"
	"farewatch/internal/logging"
	"farewatch/internal/metrics"
	"farewatch/internal/middleware"
	"farewatch/internal/workers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// RegisterRoutes builds the chi router, wires dependencies and starts the
// scheduled scan job plus the queue worker.
func RegisterRoutes(cfg *config.Config, upSince time.Time) (http.Handler, error) {
	r := chi.NewRouter()

	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	deps, err := api.InitDependencies(cfg, metricsReg)
	if err != nil {
		return nil, err
	}

	// Scheduled scans enqueue onto the Redis stream; a single worker
	// drains it so scheduled fetches stay sequential across routes.
	scanJob := jobs.NewFareScanJob(cfg, deps.Services.RedisQueue)
	if err := scanJob.Start(context.Background()); err != nil {
		return nil, err
	}

	worker := workers.NewScanQueueWorker(deps.Services.RedisQueue, deps.Services.Fetch, constants.ScanQueueStream)
	go worker.Run(context.Background())

	RegisterAPIRoutes(r, deps)

	logging.Info("Router initialized", "watch_routes", len(cfg.WatchRoutes), "api_keys", deps.Services.KeyRing.Size())
	return r, nil
}
