package app

import (
	"context"
	"database/sql"
	"fmt"

	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/adapters/geocode"
	"trip-planner-service/internal/adapters/localplanner"
	"trip-planner-service/internal/adapters/store"
	"trip-planner-service/internal/adapters/travelapi"
	"trip-planner-service/internal/catalog"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/export"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	"go.uber.org/zap"
)

// App holds the concrete adapters behind every port. It is the composition
// root shared by the server and the CLI.
type App struct {
	Config   config.Config
	Log      *zap.Logger
	Client   *travelapi.Client
	Provider string
	Catalog  *catalog.Catalog

	Generator ports.ItineraryGenerator
	Lookup    ports.DestinationLookup
	Geocoder  ports.ReverseGeocoder
	PDF       ports.PDFRenderer
	Store     ports.PlanStore
	Postcards *export.PostcardRenderer
	Photos    *services.PhotoService

	closers []func() error
}

type StoreKind int

const (
	// StoreAuto uses Postgres when DATABASE_URL is set and SQLite otherwise.
	StoreAuto StoreKind = iota
	StoreSQLite
)

func New(ctx context.Context, cfg config.Config, log *zap.Logger, storeKind StoreKind) (*App, error) {
	a := &App{Config: cfg, Log: log}

	cat, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	a.Catalog = cat

	var opts []travelapi.Option
	if cfg.RedisAddr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn("lookup cache disabled", zap.Error(domain.Degrade("lookup_cache", err)))
		} else {
			a.closers = append(a.closers, rdb.Close)
			opts = append(opts, travelapi.WithLookupCache(cache.NewRedisLookupCache(rdb, cfg.RedisPrefix, cfg.LookupCacheTTL, log)))
		}
	}

	client, err := travelapi.NewClient(cfg.BaseURL(), cfg.RequestTimeout, log, opts...)
	if err != nil {
		return nil, err
	}
	a.Client = client
	a.Lookup = client
	a.Generator, a.Provider = services.SelectGenerator(ctx, client, localplanner.NewProvider(), log)

	geocoder, err := geocode.NewNominatimGeocoder(cfg.NominatimBaseURL, cfg.UserAgent, log)
	if err != nil {
		return nil, err
	}
	a.Geocoder = geocoder

	if cfg.PDFRenderer == "remote" {
		a.PDF = client
	} else {
		a.PDF = export.NewLocalPDFRenderer()
	}

	var scenes ports.SceneGenerator
	if cfg.UseAIScene {
		scenes = client
	}
	a.Postcards = export.NewPostcardRenderer(scenes, log)
	a.Photos = services.NewPhotoService(client, cat, log)

	if err := a.openStore(ctx, storeKind); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) openStore(ctx context.Context, kind StoreKind) error {
	var (
		conn    *sql.DB
		dialect store.Dialect
		err     error
	)
	if kind == StoreAuto && a.Config.DatabaseURL != "" {
		conn, err = db.OpenPostgres(a.Config.DatabaseURL)
		dialect = store.Postgres
	} else {
		conn, err = db.OpenSQLite(a.Config.SQLitePath)
		dialect = store.SQLite
	}
	if err != nil {
		return fmt.Errorf("open plan store: %w", err)
	}
	a.closers = append(a.closers, conn.Close)

	if err := store.InitSchema(ctx, conn, dialect); err != nil {
		return fmt.Errorf("open plan store: %w", err)
	}

	if dialect == store.Postgres {
		a.Store = store.NewSQLPlanStore(conn, a.Log)
	} else {
		a.Store = store.NewSqlitePlanStore(conn)
	}
	return nil
}

// NewSession builds the planner and exports of one planning session and
// restores its persisted itinerary.
func (a *App) NewSession(ctx context.Context, id string, sharer *export.Sharer) *services.Session {
	planner := services.NewPlanner(id, a.Generator, a.Log,
		services.WithPlanStore(a.Store),
		services.WithDefaultOrigin(a.Config.DefaultOrigin),
	)
	if _, err := planner.Restore(ctx); err != nil {
		a.Log.Warn("stored plan not restored", zap.String("session_id", id), zap.Error(domain.Degrade("plan_persistence", err)))
	}
	return &services.Session{
		Planner: planner,
		Exports: services.NewExports(planner, a.PDF, a.Postcards, sharer, a.Log),
	}
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.Log.Warn("close failed", zap.Error(err))
		}
	}
	a.closers = nil
}
