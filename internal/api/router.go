package api

import (
	"net/http"

	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/catalog"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Deps are the collaborators the HTTP layer needs. Handlers stay unaware of
// concrete adapters.
type Deps struct {
	Sessions       *services.Sessions
	Lookup         ports.DestinationLookup
	Geocoder       ports.ReverseGeocoder
	Photos         *services.PhotoService
	Catalog        *catalog.Catalog
	Provider       string
	DefaultOrigin  string
	AllowedOrigins []string
	Log            *zap.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	health := &handlers.HealthHandler{Provider: d.Provider, Log: log}
	plans := &handlers.PlanHandler{Sessions: d.Sessions, Log: log}
	dests := &handlers.DestinationHandler{
		Lookup:        d.Lookup,
		Geocoder:      d.Geocoder,
		DefaultOrigin: d.DefaultOrigin,
		Log:           log,
	}
	cat := &handlers.CatalogHandler{Catalog: d.Catalog, Log: log}
	photos := &handlers.PhotoHandler{Photos: d.Photos, Log: log}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", requestIDHeader, sessionIDHeader},
		ExposedHeaders:   []string{requestIDHeader, sessionIDHeader, "Content-Disposition", "X-Postcard-Scene"},
		AllowCredentials: true,
	}).Handler)

	r.Get("/health", health.Health)
	r.Get("/themes", cat.Themes)
	r.Get("/landmarks", cat.Landmarks)
	r.Get("/interests", cat.Interests)
	r.Get("/surprise", cat.Surprise)
	r.Get("/destinations/search", dests.Search)
	r.Get("/origin/detect", dests.DetectOrigin)
	r.Post("/photos", photos.Generate)

	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware)

		r.Post("/plans", plans.Submit)
		r.Route("/plans/current", func(r chi.Router) {
			r.Get("/", plans.Current)
			r.Delete("/", plans.Reset)
			r.Get("/exports", plans.ExportStatus)
			r.Get("/export/text", plans.ExportText)
			r.Get("/export/pdf", plans.ExportPDF)
			r.Get("/share", plans.Share)
			r.Get("/postcard", plans.Postcard)
		})
	})

	return r
}
