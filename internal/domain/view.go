package domain

import (
	"strings"
	"unicode"
)

// View derives presentation values from an itinerary. Every method
// recomputes from the itinerary on each call and never modifies it.
type View struct {
	it Itinerary
}

func NewView(it Itinerary) View {
	return View{it: it}
}

// CostEntry is a display row of the cost breakdown. Key is the original
// category key; Label is its human-readable form.
type CostEntry struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Amount Amount `json:"amount"`
}

// TotalActivities sums the activity counts of all days.
func (v View) TotalActivities() int {
	total := 0
	for _, d := range v.it.DailyItinerary {
		total += len(d.Activities)
	}
	return total
}

// TopHighlights returns the titles of the first n days in itinerary order.
func (v View) TopHighlights(n int) []string {
	if n <= 0 {
		return []string{}
	}
	if n > len(v.it.DailyItinerary) {
		n = len(v.it.DailyItinerary)
	}

	out := make([]string, 0, n)
	for _, d := range v.it.DailyItinerary[:n] {
		out = append(out, d.Title)
	}
	return out
}

// CostEntries lists the cost breakdown in its original order.
func (v View) CostEntries() []CostEntry {
	out := make([]CostEntry, 0, len(v.it.CostBreakdown))
	for _, item := range v.it.CostBreakdown {
		out = append(out, CostEntry{
			Key:    item.Key,
			Label:  HumanizeKey(item.Key),
			Amount: item.Amount,
		})
	}
	return out
}

// BudgetTotal prefers the service's estimated total and falls back to the
// requested budget when the summary is absent.
func (v View) BudgetTotal() Amount {
	if bs := v.it.BudgetSummary; bs != nil && bs.TotalEstimated != nil {
		return *bs.TotalEstimated
	}
	return v.it.TotalBudget
}

// HumanizeKey inserts a space before each internal capital letter:
// "localTransport" -> "local Transport". Keys without capitals are unchanged.
func HumanizeKey(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Title upper-cases the first letter of s.
func Title(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
