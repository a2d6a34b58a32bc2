package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SqlitePlanStore {
	t.Helper()
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(context.Background(), conn, SQLite))
	// Running it twice must be harmless.
	require.NoError(t, InitSchema(context.Background(), conn, SQLite))

	s := NewSqlitePlanStore(conn)
	s.now = func() time.Time { return time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC) }
	return s
}

func samplePlan(dest string) domain.Itinerary {
	total := domain.Amount(1875)
	return domain.Itinerary{
		Destination:   dest,
		Duration:      1,
		TotalBudget:   2000,
		BudgetSummary: &domain.BudgetSummary{TotalEstimated: &total},
		CostBreakdown: domain.CostBreakdown{
			{Key: "flights", Amount: 600},
			{Key: "localTransport", Amount: 75},
		},
		DailyItinerary: []domain.DayPlan{{Day: 1, Title: "Arrival", Activities: []domain.Activity{}}},
		TravelTips:     []string{},
		PackingList:    []string{},
	}
}

func TestSqlitePlanStoreSaveLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, ok, err := s.LoadPlan(ctx, "local")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SavePlan(ctx, "local", samplePlan("Paris")))

	got, ok, err := s.LoadPlan(ctx, "local")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, samplePlan("Paris"), got)
}

func TestSqlitePlanStoreOverwritesWholesale(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SavePlan(ctx, "local", samplePlan("Paris")))
	require.NoError(t, s.SavePlan(ctx, "local", samplePlan("Tokyo")))

	got, ok, err := s.LoadPlan(ctx, "local")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Tokyo", got.Destination)

	var n int
	require.NoError(t, s.DB.QueryRow(`SELECT COUNT(*) FROM plans`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSqlitePlanStoreDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SavePlan(ctx, "local", samplePlan("Paris")))
	require.NoError(t, s.DeletePlan(ctx, "local"))
	require.NoError(t, s.DeletePlan(ctx, "local"))

	_, ok, err := s.LoadPlan(ctx, "local")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSqlitePlanStoreRejectsEmptySession(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.SavePlan(context.Background(), " ", samplePlan("Paris")))
}

func TestImportPlanFile(t *testing.T) {
	s := newTestStore(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "paris.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"destination":"Paris","duration":1,"dailyItinerary":[{"day":1,"title":"Arrival"}]}`), 0o644))

	it, err := ImportPlanFile(context.Background(), s, "local", good)
	require.NoError(t, err)
	assert.Equal(t, "Paris", it.Destination)

	stored, ok, err := s.LoadPlan(context.Background(), "local")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Arrival", stored.DailyItinerary[0].Title)

	bad := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"destination":"Paris","dailyItinerary":[]}`), 0o644))
	_, err = ImportPlanFile(context.Background(), s, "local", bad)
	assert.Error(t, err)

	_, err = ImportPlanFile(context.Background(), s, "local", filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
