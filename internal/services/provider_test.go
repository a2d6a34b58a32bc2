package services

import (
	"context"
	"testing"

	"trip-planner-service/internal/adapters/travelapi"
	"trip-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
)

type checkedGenerator struct {
	*travelapi.MockGenerator
	available bool
}

func (g checkedGenerator) Available(ctx context.Context) bool { return g.available }

func TestSelectGenerator(t *testing.T) {
	local := travelapi.NewMockGenerator(nil)

	up := checkedGenerator{MockGenerator: travelapi.NewMockGenerator(nil), available: true}
	gen, name := SelectGenerator(context.Background(), up, local, nil)
	assert.Equal(t, "remote", name)
	assert.Equal(t, up, gen)

	down := checkedGenerator{MockGenerator: travelapi.NewMockGenerator(nil)}
	gen, name = SelectGenerator(context.Background(), down, local, nil)
	assert.Equal(t, "local", name)
	assert.Same(t, local, gen)

	gen, name = SelectGenerator(context.Background(), nil, local, nil)
	assert.Equal(t, "local", name)
	assert.Same(t, local, gen)
}

func TestDetectOrigin(t *testing.T) {
	ok := geocoderFunc(func(lat, lon float64) (string, error) { return "Lisbon", nil })
	got, err := DetectOrigin(context.Background(), ok, 38.7, -9.1, nil)
	assert.NoError(t, err)
	assert.Equal(t, DetectedOrigin{Name: "Lisbon"}, got)

	down := geocoderFunc(func(lat, lon float64) (string, error) {
		return "", &domain.NetworkError{Op: "test", Err: errBoom}
	})
	got, err = DetectOrigin(context.Background(), down, 38.7, -9.1, nil)
	assert.NoError(t, err)
	assert.Equal(t, DetectedOrigin{Name: FallbackOrigin, Degraded: true}, got)

	bad := geocoderFunc(func(lat, lon float64) (string, error) {
		return "", (domain.Coordinates{Lat: lat, Lon: lon}).Validate()
	})
	_, err = DetectOrigin(context.Background(), bad, 120, 0, nil)
	assert.Equal(t, domain.KindValidation, domain.Kind(err))
}

type geocoderFunc func(lat, lon float64) (string, error)

func (f geocoderFunc) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	return f(lat, lon)
}
