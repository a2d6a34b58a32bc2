package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

type HealthHandler struct {
	Provider string
	Log      *zap.Logger
}

// Health is a liveness check that also names the itinerary provider chosen
// at startup.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.Log, http.StatusOK, map[string]string{
		"status":   "ok",
		"provider": h.Provider,
	})
}
