package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sunside-service/internal/platform/obs"
	"sunside-service/internal/ports"
	"time"
)

// CachedSolarProvider puts an AzimuthCache in front of a solar position provider.
//
// Cache read failures are returned; write failures are logged and the
// freshly computed value is still returned. Values outside [0, 360) are
// never stored. Altitude lookups are passed through uncached.
//
// Lookups are keyed by ports.NewAzimuthKey, so points within about a meter
// and instants within the same second share one entry. A segment whose
// bearing sits within that error of the 90° boundary can therefore be
// classified differently with and without the cache.
// The provider is safe for concurrent use when the cache and inner provider are.
type CachedSolarProvider struct {
	inner ports.SolarAltitudeProvider
	cache ports.AzimuthCache
}

func NewCachedSolarProvider(inner ports.SolarAltitudeProvider, cache ports.AzimuthCache) (*CachedSolarProvider, error) {
	if inner == nil {
		return nil, errors.New("cached solar provider: inner provider is nil")
	}
	return &CachedSolarProvider{inner: inner, cache: cache}, nil
}

func (c *CachedSolarProvider) GetSolarAzimuth(
	ctx context.Context,
	lat, lon float64,
	at time.Time,
) (_ float64, err error) {
	defer obs.Time(ctx, "solar.cached.GetSolarAzimuth")(&err)

	if c.cache == nil {
		return c.inner.GetSolarAzimuth(ctx, lat, lon, at)
	}

	key := ports.NewAzimuthKey(lat, lon, at)

	// Check the cache before computing.
	hits, err := c.cache.GetMany(ctx, []ports.AzimuthKey{key})
	if err != nil {
		return 0, fmt.Errorf("solar azimuth cache: %w", err)
	}
	if az, ok := hits[key]; ok {
		return az, nil
	}

	az, err := c.inner.GetSolarAzimuth(ctx, lat, lon, at)
	if err != nil {
		return 0, err
	}

	if !math.IsNaN(az) && az >= 0 && az < 360 {
		if err := c.cache.PutMany(ctx, map[ports.AzimuthKey]float64{key: az}); err != nil {
			log.Printf("azimuth cache write failed: %v", err)
		}
	}

	return az, nil
}

func (c *CachedSolarProvider) GetSolarAltitude(ctx context.Context, lat, lon float64, at time.Time) (float64, error) {
	return c.inner.GetSolarAltitude(ctx, lat, lon, at)
}
