package api

import (
	"net/http"

	"farewatch/internal/services"
)

// InsightsHandler handles GET /api/v1/insights
func InsightsHandler(insightSvc *services.InsightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		insights, err := insightSvc.DeriveInsights(r.Context(), routeFilterFromQuery(r))
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, &insights)
	}
}
