package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"farewatch/internal/db/repositories"
	"farewatch/internal/models/dtos"
	"farewatch/internal/models/entities"
	"farewatch/internal/services"
)

// TriggerFetchHandler handles POST /api/v1/fetch
func TriggerFetchHandler(fetchSvc *services.FetchService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.FetchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		if req.Origin == "" || req.Destination == "" || req.Date == "" {
			respondWithError(w, http.StatusBadRequest, "origin, destination and date are required")
			return
		}

		report, err := fetchSvc.FetchRoundTrip(
			r.Context(),
			req.Origin, req.Destination,
			req.Date, req.ReturnDate,
			req.FlexDays,
			entities.FetchTriggerManual,
		)
		if err != nil {
			var cfgErr *services.ConfigurationError
			if errors.As(err, &cfgErr) {
				respondWithError(w, http.StatusServiceUnavailable, cfgErr.Error())
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, report)
	}
}

// FetchRunsHandler handles GET /api/v1/fetch/runs
func FetchRunsHandler(runsRepo *repositories.FetchRunRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if qs := r.URL.Query().Get("limit"); qs != "" {
			if v, err := strconv.Atoi(qs); err == nil && v > 0 {
				limit = v
			}
		}

		var (
			runs []entities.FetchRun
			err  error
		)
		if filter := routeFilterFromQuery(r); filter != nil {
			runs, err = runsRepo.GetByRoute(r.Context(), filter.Origin, filter.Destination, limit)
		} else {
			runs, err = runsRepo.GetRecent(r.Context(), limit)
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, &runs)
	}
}
