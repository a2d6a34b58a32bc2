package services

import (
	"context"
	"time"

	"trip-planner-service/internal/ports"

	"go.uber.org/zap"
)

const availabilityTimeout = 5 * time.Second

// SelectGenerator picks the itinerary provider once, at startup: the remote
// service when its health check answers, the local planner otherwise.
func SelectGenerator(
	ctx context.Context,
	remote ports.ItineraryGenerator,
	local ports.ItineraryGenerator,
	log *zap.Logger,
) (ports.ItineraryGenerator, string) {
	if log == nil {
		log = zap.NewNop()
	}
	if remote != nil {
		checker, ok := remote.(ports.AvailabilityChecker)
		if !ok {
			return remote, "remote"
		}

		ctx, cancel := context.WithTimeout(ctx, availabilityTimeout)
		defer cancel()
		if checker.Available(ctx) {
			log.Info("itinerary provider selected", zap.String("provider", "remote"))
			return remote, "remote"
		}
	}
	log.Warn("itinerary provider selected", zap.String("provider", "local"))
	return local, "local"
}
