package ports

import (
	"context"
	"time"
)

// Contract for looking up where the sun is as seen from a point on Earth.
// Angles are degrees; azimuth is measured from true north, clockwise, in [0, 360).
type SolarPositionProvider interface {
	GetSolarAzimuth(ctx context.Context, lat, lon float64, at time.Time) (float64, error)
}

// Optional extension of SolarPositionProvider that also reports the sun's
// altitude above the horizon, in degrees.
type SolarAltitudeProvider interface {
	SolarPositionProvider
	GetSolarAltitude(ctx context.Context, lat, lon float64, at time.Time) (float64, error)
}
