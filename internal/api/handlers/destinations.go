package handlers

import (
	"net/http"
	"strconv"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	"go.uber.org/zap"
)

type DestinationHandler struct {
	Lookup        ports.DestinationLookup
	Geocoder      ports.ReverseGeocoder
	DefaultOrigin string
	Log           *zap.Logger
}

// Search answers with whatever lookups succeeded; failed ones are listed
// under "unavailable" and never fail the request.
func (h *DestinationHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	origin := q.Get("origin")
	if origin == "" {
		origin = h.DefaultOrigin
	}

	report, err := services.SearchDestination(r.Context(), h.Lookup, q.Get("destination"), origin, h.Log)
	if err != nil {
		writeFailure(w, r, h.Log, err)
		return
	}
	writeJSON(w, r, h.Log, http.StatusOK, report)
}

func (h *DestinationHandler) DetectOrigin(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(q.Get("lon"), 64)
	if errLat != nil || errLon != nil {
		writeFailure(w, r, h.Log, &domain.ValidationError{Code: "invalid_coordinates", Message: "lat and lon must be numbers"})
		return
	}

	origin, err := services.DetectOrigin(r.Context(), h.Geocoder, lat, lon, h.Log)
	if err != nil {
		writeFailure(w, r, h.Log, err)
		return
	}
	writeJSON(w, r, h.Log, http.StatusOK, origin)
}
