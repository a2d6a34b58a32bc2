package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinatesValidate(t *testing.T) {
	assert.NoError(t, Coordinates{Lat: 48.8566, Lon: 2.3522}.Validate())
	assert.NoError(t, Coordinates{Lat: -90, Lon: 180}.Validate())

	for _, c := range []Coordinates{
		{Lat: 91, Lon: 0},
		{Lat: 0, Lon: -181},
		{Lat: math.NaN(), Lon: 2.35},
		{Lat: 48.85, Lon: math.NaN()},
		{Lat: math.Inf(1), Lon: 0},
	} {
		err := c.Validate()
		var verr *ValidationError
		if assert.ErrorAs(t, err, &verr) {
			assert.Equal(t, "invalid_coordinates", verr.Code)
		}
	}
}
