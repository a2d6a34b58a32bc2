package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// Dialect selects the SQL flavour of the plans table.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// InitSchema creates the plans table.
func InitSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPlansQuery := `
	CREATE TABLE IF NOT EXISTS plans (
		session_id TEXT PRIMARY KEY,
		destination TEXT NOT NULL,
		payload TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	`
	if dialect == Postgres {
		createPlansQuery = `
		CREATE TABLE IF NOT EXISTS plans (
			session_id TEXT PRIMARY KEY,
			destination TEXT NOT NULL,
			payload JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		`
	}

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_plans_updated_at
	ON plans(updated_at);
	`

	statements := []string{
		createPlansQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// ImportPlanFile stores the itinerary in a JSON file as the session's plan.
func ImportPlanFile(ctx context.Context, store ports.PlanStore, sessionID, jsonPath string) (domain.Itinerary, error) {
	b, err := os.ReadFile(jsonPath)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("import plan: read %q: %w", jsonPath, err)
	}

	var it domain.Itinerary
	if err := json.Unmarshal(b, &it); err != nil {
		return domain.Itinerary{}, fmt.Errorf("import plan: parse json: %w", err)
	}
	if err := it.Validate(); err != nil {
		return domain.Itinerary{}, fmt.Errorf("import plan: %w", err)
	}

	if err := store.SavePlan(ctx, sessionID, it); err != nil {
		return domain.Itinerary{}, fmt.Errorf("import plan: %w", err)
	}
	return it, nil
}
