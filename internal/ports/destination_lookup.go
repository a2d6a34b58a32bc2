package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Secondary per-destination lookups. Failures are expected and are degraded
// by the caller, not propagated as flow failures.
type DestinationLookup interface {
	FlightPrices(ctx context.Context, destination, origin string) (domain.FlightPrices, error)
	LiveEvents(ctx context.Context, destination string) ([]domain.Event, error)
	Weather(ctx context.Context, destination string) (domain.Weather, error)
	HotelPrices(ctx context.Context, destination string) (domain.HotelPrices, error)
}

// Byte-level cache for lookup responses keyed by kind and query.
type LookupCache interface {
	Get(ctx context.Context, kind, key string) ([]byte, bool, error)
	Put(ctx context.Context, kind, key string, value []byte) error
}
