package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Validate rejects coordinates outside the WGS84 range and NaN components.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) ||
		c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return &ValidationError{Code: "invalid_coordinates", Message: fmt.Sprintf("lat=%v lon=%v", c.Lat, c.Lon)}
	}
	return nil
}
