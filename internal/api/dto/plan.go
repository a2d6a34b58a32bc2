package dto

import (
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/services"
)

type PlanRequest struct {
	Destination string   `json:"destination"`
	Origin      string   `json:"origin"`
	Budget      int      `json:"budget"`
	Days        int      `json:"days"`
	Interests   []string `json:"interests"`
}

func (r PlanRequest) Form() domain.TripForm {
	return domain.TripForm{
		Destination: r.Destination,
		Origin:      r.Origin,
		BudgetUSD:   r.Budget,
		Days:        r.Days,
		Interests:   r.Interests,
	}
}

// SummaryResponse carries the derived view values next to the itinerary.
type SummaryResponse struct {
	TotalActivities int                `json:"totalActivities"`
	Highlights      []string           `json:"highlights"`
	BudgetTotal     domain.Amount      `json:"budgetTotal"`
	CostEntries     []domain.CostEntry `json:"costEntries"`
}

type PlanResponse struct {
	State     services.State      `json:"state"`
	Itinerary *domain.Itinerary   `json:"itinerary,omitempty"`
	Summary   *SummaryResponse    `json:"summary,omitempty"`
	Error     *services.ErrorInfo `json:"error,omitempty"`
}

func NewSummary(it domain.Itinerary) *SummaryResponse {
	v := domain.NewView(it)
	return &SummaryResponse{
		TotalActivities: v.TotalActivities(),
		Highlights:      v.TopHighlights(3),
		BudgetTotal:     v.BudgetTotal(),
		CostEntries:     v.CostEntries(),
	}
}

func NewPlanResponse(s services.Snapshot) PlanResponse {
	res := PlanResponse{State: s.State, Itinerary: s.Itinerary, Error: s.Error}
	if s.Itinerary != nil {
		res.Summary = NewSummary(*s.Itinerary)
	}
	return res
}

type ShareResponse struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type ExportStatusResponse struct {
	Exports map[services.ExportKind]services.ExportStatus `json:"exports"`
}
