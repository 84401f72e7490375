package routes

import (
	"farewatch/internal/api"
	"farewatch/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers.
// Kept separate from the main router setup.
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies) {
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Post("/observations", api.RecordObservationHandler(deps.Repo.Observations))
		v1.Get("/observations", api.ObservationHistoryHandler(deps.Repo.Observations))

		v1.Get("/insights", api.InsightsHandler(deps.Services.Insights))

		// Manual fetch triggers burn upstream quota; throttle them.
		v1.Group(func(fetch chi.Router) {
			fetch.Use(middleware.RateLimitMiddleware)
			fetch.Post("/fetch", api.TriggerFetchHandler(deps.Services.Fetch))
		})
		v1.Get("/fetch/runs", api.FetchRunsHandler(deps.Repo.FetchRuns))

		v1.Get("/dashboard/chart", api.ChartHandler(deps.Services.RouteSummary))
		v1.Get("/dashboard/routes", api.RoutesHandler(deps.Services.RouteSummary))
		v1.Post("/dashboard/link", api.GenerateDashboardLinkHandler(deps.Services.URLSigner))
		v1.Get("/dashboard/view", api.ViewDashboardLinkHandler(deps.Services.URLSigner, deps.Services.RouteSummary))
	})
}
