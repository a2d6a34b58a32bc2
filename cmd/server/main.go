package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trip-planner-service/internal/api"
	"trip-planner-service/internal/app"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/logger"
	"trip-planner-service/internal/services"

	"go.uber.org/zap"
)

const (
	sessionIdleTimeout = 2 * time.Hour
	sweepInterval      = 10 * time.Minute
)

// main is the application composition root.
// It wires concrete adapters behind ports and starts the HTTP server.
func main() {
	cfg, note, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl := logger.New(cfg.LoggerLevel, cfg.LoggerFormat, cfg.Environment)
	defer func() { _ = zl.Sync() }()
	if note != "" {
		zl.Info(note)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, zl, app.StoreAuto)
	if err != nil {
		zl.Fatal("startup failed", zap.Error(err))
	}
	defer a.Close()

	// The server has no native share sheet; clients share the text themselves.
	sessions := services.NewSessions(func(ctx context.Context, id string) *services.Session {
		return a.NewSession(ctx, id, nil)
	})
	go sweepSessions(ctx, sessions, zl)

	router := api.NewRouter(api.Deps{
		Sessions:       sessions,
		Lookup:         a.Lookup,
		Geocoder:       a.Geocoder,
		Photos:         a.Photos,
		Catalog:        a.Catalog,
		Provider:       a.Provider,
		DefaultOrigin:  cfg.DefaultOrigin,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Log:            zl,
	})

	// Write timeout covers a full itinerary generation plus PDF rendering.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zl.Warn("shutdown failed", zap.Error(err))
		}
	}()

	zl.Info("server listening", zap.String("addr", srv.Addr), zap.String("provider", a.Provider))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zl.Fatal("server failed", zap.Error(err))
	}
}

func sweepSessions(ctx context.Context, sessions *services.Sessions, zl *zap.Logger) {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := sessions.Sweep(sessionIdleTimeout); n > 0 {
				zl.Debug("idle sessions dropped", zap.Int("count", n))
			}
		}
	}
}
