package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"

	"go.uber.org/zap"
)

// SQLPlanStore is a Postgres-backed PlanStore shared by server instances.
type SQLPlanStore struct {
	DB  *sql.DB
	log *zap.Logger
}

func NewSQLPlanStore(db *sql.DB, log *zap.Logger) *SQLPlanStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &SQLPlanStore{DB: db, log: log}
}

// SavePlan overwrites the session's plan in one statement.
func (s *SQLPlanStore) SavePlan(ctx context.Context, sessionID string, it domain.Itinerary) (err error) {
	defer obs.Time(ctx, s.log, "plan.store.SavePlan")(&err)

	if s.DB == nil {
		return errors.New("plan store: db is nil")
	}
	if strings.TrimSpace(sessionID) == "" {
		return errors.New("save plan: empty session id")
	}

	payload, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("save plan: marshal itinerary: %w", err)
	}

	q := `
	INSERT INTO plans (session_id, destination, payload, updated_at)
	VALUES ($1, $2, $3::jsonb, $4)
	ON CONFLICT (session_id) DO UPDATE
	SET destination = EXCLUDED.destination,
		payload = EXCLUDED.payload,
		updated_at = EXCLUDED.updated_at;
	`
	if _, err := s.DB.ExecContext(ctx, q, sessionID, it.Destination, string(payload), time.Now().UTC()); err != nil {
		return fmt.Errorf("save plan session=%q: %w", sessionID, err)
	}
	return nil
}

func (s *SQLPlanStore) LoadPlan(ctx context.Context, sessionID string) (_ domain.Itinerary, _ bool, err error) {
	defer obs.Time(ctx, s.log, "plan.store.LoadPlan")(&err)

	if s.DB == nil {
		return domain.Itinerary{}, false, errors.New("plan store: db is nil")
	}

	var payload []byte
	err = s.DB.QueryRowContext(ctx, `SELECT payload FROM plans WHERE session_id = $1;`, sessionID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Itinerary{}, false, nil
	}
	if err != nil {
		return domain.Itinerary{}, false, fmt.Errorf("load plan session=%q: %w", sessionID, err)
	}

	var it domain.Itinerary
	if err := json.Unmarshal(payload, &it); err != nil {
		return domain.Itinerary{}, false, fmt.Errorf("load plan session=%q: decode payload: %w", sessionID, err)
	}
	return it, true, nil
}

func (s *SQLPlanStore) DeletePlan(ctx context.Context, sessionID string) error {
	if s.DB == nil {
		return errors.New("plan store: db is nil")
	}
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM plans WHERE session_id = $1;`, sessionID); err != nil {
		return fmt.Errorf("delete plan session=%q: %w", sessionID, err)
	}
	return nil
}
