package ports

import "context"

// Reverse geocoding of coordinates to a place name.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}
