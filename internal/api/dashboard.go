package api

import (
	"encoding/json"
	"net/http"
	"time"

	"farewatch/internal/common"
	"farewatch/internal/db/repositories"
	"farewatch/internal/models/dtos"
	"farewatch/internal/services"
)

// ChartHandler handles GET /api/v1/dashboard/chart
func ChartHandler(summarySvc *services.RouteSummaryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		series, err := summarySvc.ChartSeries(r.Context(), routeFilterFromQuery(r))
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, &series)
	}
}

// RoutesHandler handles GET /api/v1/dashboard/routes
func RoutesHandler(summarySvc *services.RouteSummaryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := summarySvc.RouteSummaries(r.Context())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, &summaries)
	}
}

// GenerateDashboardLinkHandler handles POST /api/v1/dashboard/link
func GenerateDashboardLinkHandler(signer *common.URLSignerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.DashboardLinkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		if req.Origin == "" || req.Destination == "" {
			respondWithError(w, http.StatusBadRequest, "origin and destination are required")
			return
		}

		ttl := 15 * time.Minute
		if req.TTLMinutes > 0 {
			ttl = time.Duration(req.TTLMinutes) * time.Minute
		}

		token, expiresAt, err := signer.GenerateRouteToken(req.Origin, req.Destination, ttl)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		resp := dtos.DashboardLinkResponse{
			URL:       "/api/v1/dashboard/view?token=" + token,
			ExpiresAt: expiresAt,
		}
		respondWithSuccess(w, http.StatusOK, &resp)
	}
}

// ViewDashboardLinkHandler handles GET /api/v1/dashboard/view
// Consumes a single-use presigned token and returns the route's chart data.
func ViewDashboardLinkHandler(signer *common.URLSignerService, summarySvc *services.RouteSummaryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.URL.Query().Get("token")
		if tokenString == "" {
			respondWithError(w, http.StatusBadRequest, "token is required")
			return
		}

		token, err := signer.ValidateToken(r.Context(), tokenString)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, err.Error())
			return
		}

		if err := signer.MarkTokenAsUsed(r.Context(), token.TokenID); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		filter := &repositories.RouteFilter{Origin: token.Origin, Destination: token.Destination}
		series, err := summarySvc.ChartSeries(r.Context(), filter)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, &series)
	}
}
