package services

import (
	"errors"
	"sunside-service/internal/domain"
	"testing"
	"time"
)

func TestDaylightWindow(t *testing.T) {
	w, err := Daylight(liberec, depart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Polar() {
		t.Fatal("liberec in october should have sunrise and sunset")
	}
	if !w.Sunrise.Before(w.Sunset) {
		t.Fatalf("sunrise %v not before sunset %v", w.Sunrise, w.Sunset)
	}

	// Roughly 05:15 and 14:50 UTC.
	if w.Sunrise.Hour() < 4 || w.Sunrise.Hour() > 6 {
		t.Errorf("sunrise = %v", w.Sunrise)
	}
	if w.Sunset.Hour() < 14 || w.Sunset.Hour() > 16 {
		t.Errorf("sunset = %v", w.Sunset)
	}

	noon := w.SolarNoon()
	if noon.Hour() != 10 && noon.Hour() != 11 {
		t.Errorf("solar noon = %v, want ~10:45 UTC", noon)
	}

	if !w.Contains(depart) {
		t.Errorf("%v should be daylight", depart)
	}
	if IsDaylight(liberec, time.Date(2023, 10, 24, 22, 0, 0, 0, time.UTC)) {
		t.Errorf("22:00 UTC should be night")
	}
}

func TestDaylightPolarNight(t *testing.T) {
	svalbard := domain.Coordinates{Lat: 78.22, Lon: 15.65}
	w, err := Daylight(svalbard, time.Date(2023, 12, 21, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !w.Polar() {
		t.Fatalf("expected polar night, got %+v", w)
	}
	if w.Contains(time.Date(2023, 12, 21, 12, 0, 0, 0, time.UTC)) || !w.SolarNoon().IsZero() {
		t.Errorf("polar window should contain nothing")
	}
}

func TestDaylightInvalidInput(t *testing.T) {
	if _, err := Daylight(domain.Coordinates{Lat: 100}, depart); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
	if _, err := Daylight(liberec, time.Time{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}
