package services

import (
	"context"
	"fmt"
	"math"
	"sunside-service/internal/domain"
	"sunside-service/internal/ports"
	"time"
)

const (
	DefaultTrajectorySteps = 100
	DefaultTrajectoryStep  = 15 * time.Minute

	// Offset, in degrees, between the observer and a plotted sun position.
	trajectoryOffsetDegrees = 0.1
)

// SunTrajectory samples the sun every step, steps times, starting at start.
// Only samples with the sun above the horizon are returned. Each sample's
// Point is the observer moved trajectoryOffsetDegrees toward the sun, which
// is what a map overlay draws.
func SunTrajectory(
	ctx context.Context,
	location domain.Coordinates,
	start time.Time,
	steps int,
	step time.Duration,
	provider ports.SolarAltitudeProvider,
) ([]domain.TrajectoryPoint, error) {
	if err := location.Validate(); err != nil {
		return nil, fmt.Errorf("sun trajectory: %w", err)
	}
	if err := domain.ValidateInstant(start); err != nil {
		return nil, fmt.Errorf("sun trajectory: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("sun trajectory: %w: provider is nil", domain.ErrInvalidInput)
	}
	if steps <= 0 {
		steps = DefaultTrajectorySteps
	}
	if step <= 0 {
		step = DefaultTrajectoryStep
	}

	classifier := NewSolarSideClassifier(provider)
	out := make([]domain.TrajectoryPoint, 0, steps)

	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		at := start.Add(time.Duration(i) * step)

		alt, err := altitudeAt(ctx, provider, location, at)
		if err != nil {
			return nil, fmt.Errorf("sun trajectory: %w", err)
		}
		if alt <= 0 {
			continue
		}

		az, err := classifier.AzimuthAt(ctx, location, at)
		if err != nil {
			return nil, fmt.Errorf("sun trajectory: %w", err)
		}

		out = append(out, domain.TrajectoryPoint{
			At:       at,
			Azimuth:  az,
			Altitude: alt,
			Point: domain.Coordinates{
				Lat: location.Lat + trajectoryOffsetDegrees*math.Cos(toRad(az)),
				Lon: location.Lon + trajectoryOffsetDegrees*math.Sin(toRad(az)),
			},
		})
	}

	return out, nil
}
