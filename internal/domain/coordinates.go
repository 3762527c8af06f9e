package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinates (longitude, latitude) in degrees.
type Coordinates struct {
	Lon float64
	Lat float64
}

// Build validated coordinates. Out of range values are rejected, never clamped.
func NewCoordinates(lat, lon float64) (Coordinates, error) {
	c := Coordinates{Lon: lon, Lat: lat}
	if err := c.Validate(); err != nil {
		return Coordinates{}, err
	}
	return c, nil
}

// Validate reports whether latitude is within [-90, 90] and longitude within [-180, 180].
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrInvalidInput, c.Lat)
	}
	if math.IsNaN(c.Lon) || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: longitude %v outside [-180, 180]", ErrInvalidInput, c.Lon)
	}
	return nil
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Lat, c.Lon)
}

// A route point is a coordinate tagged with its position in the route.
// Order defines the direction of travel and is never changed.
type RoutePoint struct {
	Index int
	Coordinates
}

// Validate the coordinates and tag each with its index.
func NewRoute(coords []Coordinates) ([]RoutePoint, error) {
	if len(coords) < 2 {
		return nil, fmt.Errorf("new route: got %d points: %w", len(coords), ErrInsufficientData)
	}

	points := make([]RoutePoint, 0, len(coords))
	for i, c := range coords {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("new route: point #%d: %w", i, err)
		}
		points = append(points, RoutePoint{Index: i, Coordinates: c})
	}

	return points, nil
}
