package localplanner

import (
	"context"
	"testing"

	"trip-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateItinerary(t *testing.T) {
	req := domain.TripRequest{
		Destination: "Lisbon",
		Origin:      "New York",
		BudgetUSD:   2000,
		Days:        4,
		Interests:   []string{"Food & Dining", "Photography"},
	}

	it, err := NewProvider().GenerateItinerary(context.Background(), req)
	require.NoError(t, err)
	require.NoError(t, it.Validate())

	assert.Equal(t, "Lisbon", it.Destination)
	assert.Equal(t, 4, it.Duration)
	require.Len(t, it.DailyItinerary, 4)
	assert.Equal(t, "Arrival in Lisbon", it.DailyItinerary[0].Title)
	assert.Equal(t, "Farewell to Lisbon", it.DailyItinerary[3].Title)
	for i, d := range it.DailyItinerary {
		assert.Equal(t, i+1, d.Day)
		assert.Len(t, d.Activities, 2)
	}

	var sum domain.Amount
	for _, item := range it.CostBreakdown {
		sum += item.Amount
	}
	assert.Equal(t, domain.Amount(2000), sum)
	assert.Equal(t, sum, domain.NewView(it).BudgetTotal())

	transport, ok := it.CostBreakdown.Get("transportation")
	require.True(t, ok)
	assert.Equal(t, domain.Amount(100), transport)

	assert.Contains(t, it.PackingList, "Camera and spare batteries")
}

func TestGenerateItineraryWithoutInterests(t *testing.T) {
	it, err := NewProvider().GenerateItinerary(context.Background(), domain.TripRequest{
		Destination: "Oslo",
		BudgetUSD:   1000,
		Days:        1,
	})
	require.NoError(t, err)
	require.Len(t, it.DailyItinerary, 1)
	assert.Equal(t, "Arrival in Oslo", it.DailyItinerary[0].Title)
	assert.NotEmpty(t, it.DailyItinerary[0].Activities)
}

func TestPackingListHasNoDuplicates(t *testing.T) {
	list := packingList([]string{"Adventure", "Nature"})

	seen := map[string]bool{}
	for _, item := range list {
		assert.False(t, seen[item], "duplicate %q", item)
		seen[item] = true
	}
}

func TestGenerateItineraryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider().GenerateItinerary(ctx, domain.TripRequest{Destination: "Oslo", BudgetUSD: 1000, Days: 1})
	assert.Equal(t, domain.KindNetwork, domain.Kind(err))
}
