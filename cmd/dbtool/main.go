package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"trip-planner-service/internal/adapters/store"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/logger"

	"go.uber.org/zap"
)

// dbtool initialises the Postgres plan store and can import a plan file
// into a session.
func main() {
	importPath := flag.String("import", "", "itinerary JSON file to store")
	sessionID := flag.String("session", "", "session id for -import")
	flag.Parse()

	cfg, note, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	zl := logger.New(cfg.LoggerLevel, cfg.LoggerFormat, cfg.Environment)
	defer func() { _ = zl.Sync() }()
	if note != "" {
		zl.Info(note)
	}

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		zl.Fatal("DATABASE_URL is required")
	}

	conn, err := db.OpenPostgres(cfg.DatabaseURL)
	if err != nil {
		zl.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	ctx := context.Background()

	zl.Info("Initializing database schema...")
	if err := store.InitSchema(ctx, conn, store.Postgres); err != nil {
		zl.Fatal("schema initialization failed", zap.Error(err))
	}
	zl.Info("Schema ready.")

	if *importPath == "" {
		return
	}
	if *sessionID == "" {
		zl.Fatal("-session is required with -import")
	}
	it, err := store.ImportPlanFile(ctx, store.NewSQLPlanStore(conn, zl), *sessionID, *importPath)
	if err != nil {
		zl.Fatal("import failed", zap.Error(err))
	}
	zl.Info("Plan imported.", zap.String("session_id", *sessionID), zap.String("destination", it.Destination))
}
