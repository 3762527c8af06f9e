package solar

import (
	"context"
	"sync"
	"time"
)

// MockSolarProvider returns azimuths from a function, or a fixed value.
// Altitudes work the same way through AltitudeFunc and Altitude.
// It records the number of azimuth lookups and is safe for concurrent use.
type MockSolarProvider struct {
	Azimuth      float64
	Altitude     float64
	Func         func(lat, lon float64, at time.Time) (float64, error)
	AltitudeFunc func(lat, lon float64, at time.Time) (float64, error)

	mu    sync.Mutex
	calls int
}

func NewMockSolarProvider(azimuth float64) *MockSolarProvider {
	return &MockSolarProvider{Azimuth: azimuth, Altitude: 30}
}

func (p *MockSolarProvider) GetSolarAzimuth(ctx context.Context, lat, lon float64, at time.Time) (float64, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	if p.Func != nil {
		return p.Func(lat, lon, at)
	}
	return p.Azimuth, nil
}

func (p *MockSolarProvider) GetSolarAltitude(ctx context.Context, lat, lon float64, at time.Time) (float64, error) {
	if p.AltitudeFunc != nil {
		return p.AltitudeFunc(lat, lon, at)
	}
	return p.Altitude, nil
}

// Calls returns how many azimuth lookups were made.
func (p *MockSolarProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
