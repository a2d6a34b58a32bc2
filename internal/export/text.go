package export

import (
	"fmt"
	"regexp"
	"strings"

	"trip-planner-service/internal/domain"
)

// TextReport renders the itinerary as a plain-text document. The budget
// line shows the requested total budget, not the estimate.
func TextReport(it domain.Itinerary) string {
	v := domain.NewView(it)

	var b strings.Builder
	fmt.Fprintf(&b, "TRIP ITINERARY: %s\n", it.Destination)
	fmt.Fprintf(&b, "Duration: %d days\n", it.Duration)
	fmt.Fprintf(&b, "Budget: $%s\n\n", it.TotalBudget)

	b.WriteString("COST BREAKDOWN:\n")
	for _, e := range v.CostEntries() {
		fmt.Fprintf(&b, "- %s: $%s\n", domain.Title(e.Label), e.Amount)
	}

	b.WriteString("\nDAILY ITINERARY:\n")
	for _, d := range it.DailyItinerary {
		fmt.Fprintf(&b, "\nDay %d: %s\n", d.Day, d.Title)
		for _, a := range d.Activities {
			fmt.Fprintf(&b, "  %s - %s: %s\n", a.Time, a.Activity, a.Description)
		}
		fmt.Fprintf(&b, "Estimated Daily Cost: $%s\n", d.EstimatedDailyCost)
	}

	b.WriteString("\nTRAVEL TIPS:\n")
	for _, tip := range it.TravelTips {
		fmt.Fprintf(&b, "- %s\n", tip)
	}
	return b.String()
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Filename builds a download name such as "Paris-France-itinerary.txt".
func Filename(destination, suffix, ext string) string {
	base := strings.Trim(unsafeFilename.ReplaceAllString(destination, "-"), "-")
	if base == "" {
		base = "trip"
	}
	if suffix != "" {
		base += "-" + suffix
	}
	return base + "." + strings.TrimPrefix(ext, ".")
}
