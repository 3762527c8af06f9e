package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidInput covers bad coordinates, missing instants and malformed routes.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientData is returned when a route has no segment to classify.
	ErrInsufficientData = fmt.Errorf("%w: route needs at least 2 distinct points", ErrInvalidInput)

	// ErrCollaborator matches every CollaboratorError.
	ErrCollaborator = errors.New("solar position provider failed")
)

// Quantities a solar position provider is asked for.
const (
	QuantityAzimuth  = "azimuth"
	QuantityAltitude = "altitude"
)

// CollaboratorError reports a failed or out-of-range solar position lookup.
// An empty Quantity means QuantityAzimuth.
type CollaboratorError struct {
	Quantity string
	Lat      float64
	Lon      float64
	At       time.Time
	Value    float64
	Err      error
}

func (e *CollaboratorError) Error() string {
	quantity, valid := QuantityAzimuth, "[0, 360)"
	if e.Quantity == QuantityAltitude {
		quantity, valid = QuantityAltitude, "[-90, 90]"
	}

	if e.Err != nil {
		return fmt.Sprintf("solar %s at (%.6f, %.6f) %s: %v",
			quantity, e.Lat, e.Lon, e.At.Format(time.RFC3339), e.Err)
	}
	return fmt.Sprintf("solar %s at (%.6f, %.6f) %s: value %v outside %s",
		quantity, e.Lat, e.Lon, e.At.Format(time.RFC3339), e.Value, valid)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

func (e *CollaboratorError) Is(target error) bool { return target == ErrCollaborator }

// Reject the zero instant, which stands in for a missing or naive timestamp.
func ValidateInstant(t time.Time) error {
	if t.IsZero() {
		return fmt.Errorf("%w: timestamp is missing", ErrInvalidInput)
	}
	return nil
}
