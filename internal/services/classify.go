package services

import (
	"context"
	"fmt"
	"math"
	"sunside-service/internal/domain"
	"sunside-service/internal/ports"
	"time"
)

// ClassifySide reports whether the sun at azimuth is left or right of a
// vehicle heading along bearing.
//
// The rule compares the unsigned linear difference |bearing - azimuth|, not
// the circular one: a difference below 90 or above 270 is LEFT.
func ClassifySide(bearing, azimuth float64) domain.Side {
	diff := math.Abs(bearing - azimuth)
	if diff < 90 || diff > 270 {
		return domain.SideLeft
	}
	return domain.SideRight
}

// SignedSunOffset is the circular difference bearing - azimuth in (-180, 180].
// Positive means the sun is counter-clockwise from the heading (to the left).
func SignedSunOffset(bearing, azimuth float64) float64 {
	d := math.Mod(bearing-azimuth+540, 360) - 180
	if d == -180 {
		d = 180
	}
	return d
}

// SolarSideClassifier classifies route segments against the sun position
// supplied by an external provider.
type SolarSideClassifier struct {
	provider ports.SolarPositionProvider
}

func NewSolarSideClassifier(provider ports.SolarPositionProvider) *SolarSideClassifier {
	return &SolarSideClassifier{provider: provider}
}

// AzimuthAt returns the sun's azimuth at point and instant at.
// Provider failures and values outside [0, 360) are returned as *domain.CollaboratorError.
func (c *SolarSideClassifier) AzimuthAt(ctx context.Context, point domain.Coordinates, at time.Time) (float64, error) {
	if c.provider == nil {
		return 0, fmt.Errorf("azimuth at: %w: provider is nil", domain.ErrInvalidInput)
	}
	if err := point.Validate(); err != nil {
		return 0, fmt.Errorf("azimuth at: %w", err)
	}
	if err := domain.ValidateInstant(at); err != nil {
		return 0, fmt.Errorf("azimuth at: %w", err)
	}

	az, err := c.provider.GetSolarAzimuth(ctx, point.Lat, point.Lon, at)
	if err != nil {
		return 0, &domain.CollaboratorError{Lat: point.Lat, Lon: point.Lon, At: at, Err: err}
	}
	if !validAngle(az) {
		return 0, &domain.CollaboratorError{Lat: point.Lat, Lon: point.Lon, At: at, Value: az}
	}

	return az, nil
}

// Classify resolves the azimuth at point and classifies it against bearing.
func (c *SolarSideClassifier) Classify(
	ctx context.Context,
	point domain.Coordinates,
	at time.Time,
	bearing float64,
) (domain.Side, float64, error) {
	if !validAngle(bearing) {
		return domain.SideLeft, 0, fmt.Errorf("classify: %w: bearing %v outside [0, 360)", domain.ErrInvalidInput, bearing)
	}

	az, err := c.AzimuthAt(ctx, point, at)
	if err != nil {
		return domain.SideLeft, 0, err
	}

	return ClassifySide(bearing, az), az, nil
}

// altitudeAt asks provider for the sun's altitude and checks it like AzimuthAt
// checks azimuths: failures and values outside [-90, 90] are collaborator errors.
func altitudeAt(
	ctx context.Context,
	provider ports.SolarAltitudeProvider,
	point domain.Coordinates,
	at time.Time,
) (float64, error) {
	alt, err := provider.GetSolarAltitude(ctx, point.Lat, point.Lon, at)
	if err != nil {
		return 0, &domain.CollaboratorError{
			Quantity: domain.QuantityAltitude, Lat: point.Lat, Lon: point.Lon, At: at, Err: err,
		}
	}
	if math.IsNaN(alt) || alt < -90 || alt > 90 {
		return 0, &domain.CollaboratorError{
			Quantity: domain.QuantityAltitude, Lat: point.Lat, Lon: point.Lon, At: at, Value: alt,
		}
	}
	return alt, nil
}

func validAngle(deg float64) bool {
	return !math.IsNaN(deg) && !math.IsInf(deg, 0) && deg >= 0 && deg < 360
}
