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
)

// SQLite-backed implementation of the PlanStore port. It is the on-device
// store used by the CLI.
type SqlitePlanStore struct {
	DB  *sql.DB
	now func() time.Time
}

func NewSqlitePlanStore(db *sql.DB) *SqlitePlanStore {
	return &SqlitePlanStore{DB: db, now: time.Now}
}

// SavePlan replaces the session's stored plan.
func (s *SqlitePlanStore) SavePlan(ctx context.Context, sessionID string, it domain.Itinerary) error {
	if s.DB == nil {
		return errors.New("sqlite plan store: DB is nil")
	}
	if strings.TrimSpace(sessionID) == "" {
		return errors.New("save plan: empty session id")
	}

	payload, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("save plan: marshal itinerary: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO plans (
		session_id,
		destination,
		payload,
		updated_at
	)
	VALUES (?, ?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, query, sessionID, it.Destination, string(payload), s.now().UTC()); err != nil {
		return fmt.Errorf("save plan session=%q: %w", sessionID, err)
	}

	return nil
}

func (s *SqlitePlanStore) LoadPlan(ctx context.Context, sessionID string) (domain.Itinerary, bool, error) {
	if s.DB == nil {
		return domain.Itinerary{}, false, errors.New("sqlite plan store: DB is nil")
	}

	query := `
	SELECT payload
	FROM plans
	WHERE session_id = ?;
	`
	var payload string
	err := s.DB.QueryRowContext(ctx, query, sessionID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Itinerary{}, false, nil
	}
	if err != nil {
		return domain.Itinerary{}, false, fmt.Errorf("load plan session=%q: %w", sessionID, err)
	}

	var it domain.Itinerary
	if err := json.Unmarshal([]byte(payload), &it); err != nil {
		return domain.Itinerary{}, false, fmt.Errorf("load plan session=%q: decode payload: %w", sessionID, err)
	}
	return it, true, nil
}

func (s *SqlitePlanStore) DeletePlan(ctx context.Context, sessionID string) error {
	if s.DB == nil {
		return errors.New("sqlite plan store: DB is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM plans WHERE session_id = ?;`, sessionID); err != nil {
		return fmt.Errorf("delete plan session=%q: %w", sessionID, err)
	}
	return nil
}
