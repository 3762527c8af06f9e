package services

import (
	"fmt"
	"sunside-service/internal/domain"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// Sunrise and sunset for one calendar day at one place, in UTC.
// Both are zero when the sun does not rise or set that day.
type DaylightWindow struct {
	Sunrise time.Time
	Sunset  time.Time
}

// Polar reports whether the day has no sunrise/sunset pair.
func (w DaylightWindow) Polar() bool { return w.Sunrise.IsZero() || w.Sunset.IsZero() }

// Contains reports whether t lies between sunrise and sunset.
func (w DaylightWindow) Contains(t time.Time) bool {
	if w.Polar() {
		return false
	}
	return !t.Before(w.Sunrise) && t.Before(w.Sunset)
}

// SolarNoon is the midpoint between sunrise and sunset.
func (w DaylightWindow) SolarNoon() time.Time {
	if w.Polar() {
		return time.Time{}
	}
	return w.Sunrise.Add(w.Sunset.Sub(w.Sunrise) / 2)
}

// Daylight returns the sunrise/sunset window for the UTC calendar day of date.
func Daylight(point domain.Coordinates, date time.Time) (DaylightWindow, error) {
	if err := point.Validate(); err != nil {
		return DaylightWindow{}, fmt.Errorf("daylight: %w", err)
	}
	if err := domain.ValidateInstant(date); err != nil {
		return DaylightWindow{}, fmt.Errorf("daylight: %w", err)
	}

	d := date.UTC()
	rise, set := sunrise.SunriseSunset(point.Lat, point.Lon, d.Year(), d.Month(), d.Day())
	return DaylightWindow{Sunrise: rise, Sunset: set}, nil
}

// IsDaylight reports whether the sun is between sunrise and sunset at t.
// Days without a sunrise/sunset pair report false.
func IsDaylight(point domain.Coordinates, t time.Time) bool {
	w, err := Daylight(point, t)
	if err != nil {
		return false
	}
	return w.Contains(t)
}
