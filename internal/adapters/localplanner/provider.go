package localplanner

import (
	"context"
	"fmt"
	"math"

	"trip-planner-service/internal/domain"
)

// Provider builds itineraries offline from templates. It is the fallback
// generator used when the planning service is unreachable at startup.
type Provider struct{}

func NewProvider() *Provider { return &Provider{} }

type budgetShare struct {
	key   string
	share float64
}

// Shares of the total budget per category; transportation takes the remainder.
var budgetShares = []budgetShare{
	{"flights", 0.30},
	{"accommodation", 0.35},
	{"activities", 0.15},
	{"food", 0.15},
	{"transportation", 0},
}

type slotTemplate struct {
	time     string
	duration string
	name     string
	desc     string
}

var interestTemplates = map[string][]slotTemplate{
	"Culture & History": {
		{"09:00", "2 hours", "Old Town walking tour", "Guided walk through the historic center of %s."},
		{"14:00", "2 hours", "History museum", "Learn how %s grew into the city it is today."},
	},
	"Food & Dining": {
		{"10:00", "2 hours", "Market tasting", "Sample local specialties at a food market in %s."},
		{"19:00", "2 hours", "Chef's tasting menu", "An evening of regional cuisine in %s."},
	},
	"Adventure": {
		{"08:00", "4 hours", "Outdoor excursion", "A half-day hike or ride outside %s."},
	},
	"Nightlife": {
		{"21:00", "3 hours", "Nightlife district", "Bars and live music in the liveliest part of %s."},
	},
	"Shopping": {
		{"11:00", "3 hours", "Shopping streets", "Browse boutiques and local designers in %s."},
	},
	"Nature": {
		{"09:00", "3 hours", "Parks and gardens", "Green spaces and viewpoints around %s."},
	},
	"Art & Museums": {
		{"10:00", "3 hours", "Art museum", "The signature collection of %s."},
	},
	"Photography": {
		{"06:30", "2 hours", "Sunrise photo walk", "Golden-hour shots of %s landmarks."},
	},
	"Relaxation": {
		{"15:00", "2 hours", "Spa afternoon", "Unwind at a spa or thermal bath in %s."},
	},
	"Local Experiences": {
		{"16:00", "2 hours", "Neighborhood with a local", "Meet residents and see everyday %s."},
	},
}

var defaultTemplates = []slotTemplate{
	{"09:00", "3 hours", "City highlights", "The must-see sights of %s."},
	{"14:00", "2 hours", "Scenic viewpoint", "Panoramic views over %s."},
	{"19:00", "2 hours", "Dinner in town", "A relaxed dinner at a local favorite in %s."},
}

func (p *Provider) GenerateItinerary(ctx context.Context, req domain.TripRequest) (domain.Itinerary, error) {
	if err := ctx.Err(); err != nil {
		return domain.Itinerary{}, &domain.NetworkError{Op: "localplanner.GenerateItinerary", Err: err}
	}

	breakdown := splitBudget(req.BudgetUSD)
	activities, _ := breakdown.Get("activities")
	food, _ := breakdown.Get("food")
	transport, _ := breakdown.Get("transportation")
	daily := domain.Amount(math.Round(float64(activities+food+transport) / float64(req.Days)))

	templates := pickTemplates(req.Interests)
	days := make([]domain.DayPlan, 0, req.Days)
	for d := 1; d <= req.Days; d++ {
		days = append(days, buildDay(d, req, templates, daily))
	}

	total := domain.Amount(0)
	for _, item := range breakdown {
		total += item.Amount
	}

	return domain.Itinerary{
		Destination:    req.Destination,
		Duration:       req.Days,
		TotalBudget:    domain.Amount(req.BudgetUSD),
		BudgetSummary:  &domain.BudgetSummary{TotalEstimated: &total},
		CostBreakdown:  breakdown,
		DailyItinerary: days,
		TravelTips: []string{
			"Book popular attractions a few days ahead.",
			"Carry a little local currency for small vendors.",
			fmt.Sprintf("Public transport is usually the fastest way around %s.", req.Destination),
		},
		PackingList: packingList(req.Interests),
	}, nil
}

// splitBudget divides budget by share in whole dollars; the last category
// absorbs rounding so the entries sum to budget exactly.
func splitBudget(budget int) domain.CostBreakdown {
	out := make(domain.CostBreakdown, 0, len(budgetShares))
	remaining := budget
	for i, s := range budgetShares {
		amt := int(math.Round(float64(budget) * s.share))
		if i == len(budgetShares)-1 {
			amt = remaining
		}
		remaining -= amt
		out = append(out, domain.CostItem{Key: s.key, Amount: domain.Amount(amt)})
	}
	return out
}

func pickTemplates(interests []string) []slotTemplate {
	var out []slotTemplate
	for _, i := range interests {
		out = append(out, interestTemplates[i]...)
	}
	if len(out) == 0 {
		return defaultTemplates
	}
	return out
}

func buildDay(day int, req domain.TripRequest, templates []slotTemplate, daily domain.Amount) domain.DayPlan {
	const perDay = 2
	acts := make([]domain.Activity, 0, perDay)
	for i := 0; i < perDay && i < len(templates); i++ {
		t := templates[((day-1)*perDay+i)%len(templates)]
		acts = append(acts, domain.Activity{
			Time:        t.time,
			Activity:    t.name,
			Description: fmt.Sprintf(t.desc, req.Destination),
			Location:    req.Destination,
			Duration:    t.duration,
			Cost:        daily / 4,
		})
	}

	title := fmt.Sprintf("Exploring %s", req.Destination)
	switch {
	case day == 1:
		title = fmt.Sprintf("Arrival in %s", req.Destination)
	case day == req.Days:
		title = fmt.Sprintf("Farewell to %s", req.Destination)
	case len(acts) > 0:
		title = acts[0].Activity
	}

	return domain.DayPlan{
		Day:        day,
		Title:      title,
		Activities: acts,
		Meals: map[string]string{
			"breakfast": "Cafe near your hotel",
			"lunch":     "Local bistro",
			"dinner":    "Regional specialties",
		},
		EstimatedDailyCost: daily,
	}
}

func packingList(interests []string) []string {
	out := []string{"Passport and travel documents", "Phone charger and adapter", "Comfortable walking shoes"}
	seen := map[string]struct{}{}
	add := func(items ...string) {
		for _, it := range items {
			if _, ok := seen[it]; ok {
				continue
			}
			seen[it] = struct{}{}
			out = append(out, it)
		}
	}
	for _, i := range interests {
		switch i {
		case "Adventure", "Nature":
			add("Rain jacket", "Reusable water bottle")
		case "Photography":
			add("Camera and spare batteries")
		case "Nightlife":
			add("Evening outfit")
		}
	}
	return out
}
