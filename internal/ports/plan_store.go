package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Port: persistence of the current itinerary of a planning session.
// Save overwrites the whole stored plan; plans are never merged.
type PlanStore interface {
	SavePlan(ctx context.Context, sessionID string, it domain.Itinerary) error
	// Returns ok=false when the session has no stored plan.
	LoadPlan(ctx context.Context, sessionID string) (domain.Itinerary, bool, error)
	DeletePlan(ctx context.Context, sessionID string) error
}
