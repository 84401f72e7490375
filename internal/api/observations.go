package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"farewatch/internal/db/repositories"
	"farewatch/internal/models/dtos"
	"farewatch/internal/models/entities"
)

// routeFilterFromQuery builds the optional route filter from query params.
// Both airports must be present for the filter to apply.
func routeFilterFromQuery(r *http.Request) *repositories.RouteFilter {
	origin := r.URL.Query().Get("origin")
	destination := r.URL.Query().Get("destination")
	if origin == "" || destination == "" {
		return nil
	}
	return &repositories.RouteFilter{Origin: origin, Destination: destination}
}

// RecordObservationHandler handles POST /api/v1/observations
func RecordObservationHandler(store *repositories.ObservationRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.ObservationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		obs := &entities.FareObservation{
			Airline:          req.Airline,
			Origin:           req.Origin,
			Destination:      req.Destination,
			DepartureDate:    req.DepartureDate,
			Price:            req.Price,
			DepartureTime:    req.DepartureTime,
			ArrivalTime:      req.ArrivalTime,
			FlightNumber:     req.FlightNumber,
			StopCount:        req.StopCount,
			BookingReference: req.BookingReference,
		}
		if req.ScrapedAt != nil {
			obs.ScrapedAt = *req.ScrapedAt
		}
		if req.DurationMinutes != nil {
			obs.DurationMinutes.Int64 = int64(*req.DurationMinutes)
			obs.DurationMinutes.Valid = true
		}

		if err := store.Record(r.Context(), obs); err != nil {
			var vErr *repositories.ValidationError
			if errors.As(err, &vErr) {
				respondWithError(w, http.StatusUnprocessableEntity, vErr.Error())
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusCreated, obs)
	}
}

// ObservationHistoryHandler handles GET /api/v1/observations
func ObservationHistoryHandler(store *repositories.ObservationRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		history, err := store.QueryHistory(r.Context(), routeFilterFromQuery(r))
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, &history)
	}
}
