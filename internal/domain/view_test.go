package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewTotalActivities(t *testing.T) {
	v := NewView(decodeParis(t))
	assert.Equal(t, 6, v.TotalActivities())
}

func TestViewTopHighlights(t *testing.T) {
	v := NewView(decodeParis(t))

	assert.Equal(t, []string{"Arrival & Eiffel Tower", "Louvre & Seine", "Montmartre"}, v.TopHighlights(3))
	assert.Equal(t, []string{"Arrival & Eiffel Tower"}, v.TopHighlights(1))
	assert.Len(t, v.TopHighlights(10), 3)
	assert.Empty(t, v.TopHighlights(0))
	assert.NotNil(t, v.TopHighlights(-1))
}

func TestViewBudgetTotal(t *testing.T) {
	it := decodeParis(t)
	assert.Equal(t, Amount(1875), NewView(it).BudgetTotal())

	it.BudgetSummary = nil
	assert.Equal(t, Amount(2000), NewView(it).BudgetTotal())

	// A present summary without a total falls back as well.
	it.BudgetSummary = &BudgetSummary{}
	assert.Equal(t, Amount(2000), NewView(it).BudgetTotal())
}

func TestViewCostEntries(t *testing.T) {
	entries := NewView(decodeParis(t)).CostEntries()

	assert.Equal(t, CostEntry{Key: "localTransport", Label: "local Transport", Amount: 75}, entries[2])
	assert.Equal(t, "flights", entries[0].Label)
}

func TestViewIsIdempotent(t *testing.T) {
	it := decodeParis(t)
	v := NewView(it)

	first := []any{v.TotalActivities(), v.TopHighlights(3), v.CostEntries(), v.BudgetTotal()}
	second := []any{v.TotalActivities(), v.TopHighlights(3), v.CostEntries(), v.BudgetTotal()}

	assert.Equal(t, first, second)
	assert.Equal(t, decodeParis(t), it)
}

func TestHumanizeKey(t *testing.T) {
	assert.Equal(t, "local Transport", HumanizeKey("localTransport"))
	assert.Equal(t, "transportation", HumanizeKey("transportation"))
	assert.Equal(t, "Flights", HumanizeKey("Flights"))
	assert.Equal(t, "", HumanizeKey(""))
	assert.Equal(t, "Local Transport", Title(HumanizeKey("localTransport")))
}
