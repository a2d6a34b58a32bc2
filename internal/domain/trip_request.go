package domain

import (
	"sort"
	"strings"
)

const (
	DefaultOrigin = "New York"
	DefaultBudget = 2000
	DefaultDays   = 3
	MinDays       = 1
	MaxDays       = 14
)

// TripForm holds raw form values as entered by the user. Zero values mean
// "not provided".
type TripForm struct {
	Destination string   `json:"destination"`
	Origin      string   `json:"origin"`
	BudgetUSD   int      `json:"budget"`
	Days        int      `json:"days"`
	Interests   []string `json:"interests"`
}

// TripRequest is a validated itinerary-generation request.
// It is built once per submission and never modified after being sent.
type TripRequest struct {
	Destination string
	Origin      string
	BudgetUSD   int
	Days        int
	Interests   []string
}

// BuildTripRequest validates form and fills in defaults. fallbackOrigin
// replaces DefaultOrigin when non-empty.
func BuildTripRequest(form TripForm, fallbackOrigin string) (TripRequest, error) {
	dest := strings.TrimSpace(form.Destination)
	if dest == "" {
		return TripRequest{}, &ValidationError{Code: "missing_destination", Message: "please enter a destination"}
	}

	origin := strings.TrimSpace(form.Origin)
	if origin == "" {
		origin = strings.TrimSpace(fallbackOrigin)
	}
	if origin == "" {
		origin = DefaultOrigin
	}

	budget := form.BudgetUSD
	if budget < 0 {
		return TripRequest{}, &ValidationError{Code: "invalid_budget", Message: "budget must be a positive amount"}
	}
	if budget == 0 {
		budget = DefaultBudget
	}

	days := form.Days
	switch {
	case days == 0:
		days = DefaultDays
	case days < MinDays:
		days = MinDays
	case days > MaxDays:
		days = MaxDays
	}

	return TripRequest{
		Destination: dest,
		Origin:      origin,
		BudgetUSD:   budget,
		Days:        days,
		Interests:   normalizeInterests(form.Interests),
	}, nil
}

// Interests are a set: trimmed, de-duplicated and sorted so equal sets
// produce identical payloads.
func normalizeInterests(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, i := range in {
		i = strings.TrimSpace(i)
		if i == "" {
			continue
		}
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	sort.Strings(out)
	return out
}
