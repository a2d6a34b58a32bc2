package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Contract for producing an itinerary from a validated trip request.
// Implementations make a single attempt and return either a complete
// itinerary or an error from the domain taxonomy.
type ItineraryGenerator interface {
	GenerateItinerary(ctx context.Context, req domain.TripRequest) (domain.Itinerary, error)
}

// Optional extension reporting whether a generator can currently serve requests.
type AvailabilityChecker interface {
	Available(ctx context.Context) bool
}
