package services

import (
	"context"
	"errors"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"

	"go.uber.org/zap"
)

// FallbackOrigin is used when the place name cannot be resolved.
const FallbackOrigin = "Current Location"

type DetectedOrigin struct {
	Name     string `json:"name"`
	Degraded bool   `json:"degraded"`
}

// DetectOrigin resolves coordinates to a place name for the origin field.
// Only invalid coordinates are an error; lookup failures degrade to
// FallbackOrigin.
func DetectOrigin(ctx context.Context, geocoder ports.ReverseGeocoder, lat, lon float64, log *zap.Logger) (DetectedOrigin, error) {
	name, err := geocoder.ReverseGeocode(ctx, lat, lon)
	if err == nil {
		return DetectedOrigin{Name: name}, nil
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return DetectedOrigin{}, err
	}
	if log != nil {
		log.Info("origin detection degraded", zap.Error(domain.Degrade("origin_detection", err)))
	}
	return DetectedOrigin{Name: FallbackOrigin, Degraded: true}, nil
}
