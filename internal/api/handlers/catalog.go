package handlers

import (
	"math/rand/v2"
	"net/http"
	"time"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/catalog"
	"trip-planner-service/internal/domain"

	"go.uber.org/zap"
)

type CatalogHandler struct {
	Catalog *catalog.Catalog
	Log     *zap.Logger
	Now     func() time.Time
}

func (h *CatalogHandler) Themes(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	writeJSON(w, r, h.Log, http.StatusOK, dto.ThemesResponse{
		Current: domain.CurrentSeason(now().Month()),
		Themes:  domain.Themes(),
	})
}

func (h *CatalogHandler) Landmarks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.Log, http.StatusOK, dto.LandmarksResponse{Landmarks: h.Catalog.Landmarks})
}

func (h *CatalogHandler) Interests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.Log, http.StatusOK, map[string][]string{"interests": h.Catalog.Interests})
}

// Surprise suggests a random destination, duration and budget.
func (h *CatalogHandler) Surprise(w http.ResponseWriter, r *http.Request) {
	form := h.Catalog.SurpriseForm(rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)))
	writeJSON(w, r, h.Log, http.StatusOK, dto.SurpriseResponse{
		Destination: form.Destination,
		Days:        form.Days,
		Budget:      form.BudgetUSD,
		ImageURL:    h.Catalog.DestinationImage(form.Destination),
	})
}
