package domain

import (
	"fmt"
	"time"
)

// TimePolicy resolves the evaluation instant for the point at index i.
type TimePolicy interface {
	TimeAt(index int) time.Time
	Validate() error
}

// FixedTime evaluates every point at the same instant.
type FixedTime struct {
	At time.Time
}

func (f FixedTime) TimeAt(int) time.Time { return f.At }

func (f FixedTime) Validate() error {
	if err := ValidateInstant(f.At); err != nil {
		return fmt.Errorf("fixed time policy: %w", err)
	}
	return nil
}

// SteppedTime models a moving vehicle: point i is reached at Start + i*Interval.
type SteppedTime struct {
	Start    time.Time
	Interval time.Duration
}

func (s SteppedTime) TimeAt(index int) time.Time {
	return s.Start.Add(time.Duration(index) * s.Interval)
}

func (s SteppedTime) Validate() error {
	if err := ValidateInstant(s.Start); err != nil {
		return fmt.Errorf("stepped time policy: %w", err)
	}
	if s.Interval < 0 {
		return fmt.Errorf("stepped time policy: %w: negative interval %s", ErrInvalidInput, s.Interval)
	}
	return nil
}

// Pick FixedTime for a zero step and SteppedTime otherwise. A negative step
// stays a SteppedTime so that Validate rejects it.
func NewTimePolicy(at time.Time, step time.Duration) TimePolicy {
	if step == 0 {
		return FixedTime{At: at}
	}
	return SteppedTime{Start: at, Interval: step}
}

// One sample of the sun's path as seen from an observer.
// Point is the observer position shifted toward the sun for plotting.
type TrajectoryPoint struct {
	At       time.Time
	Azimuth  float64
	Altitude float64
	Point    Coordinates
}
