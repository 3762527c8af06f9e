package ports

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Identifies one azimuth lookup. Build keys with NewAzimuthKey so that
// nearby lookups share an entry.
type AzimuthKey struct {
	Lat  float64
	Lon  float64
	Unix int64
}

// Round coordinates to 1e-5 degrees (about a meter) and time to the second.
// Lookups that round to the same key are answered with the same azimuth.
func NewAzimuthKey(lat, lon float64, at time.Time) AzimuthKey {
	return AzimuthKey{
		Lat:  math.Round(lat*1e5) / 1e5,
		Lon:  math.Round(lon*1e5) / 1e5,
		Unix: at.Unix(),
	}
}

func (k AzimuthKey) String() string {
	return fmt.Sprintf("%.5f|%.5f|%d", k.Lat, k.Lon, k.Unix)
}

// Contract for caching solar azimuth lookups.
type AzimuthCache interface {
	// Return cached azimuths for the keys that are present.
	GetMany(ctx context.Context, keys []AzimuthKey) (map[AzimuthKey]float64, error)
	// Store azimuths.
	PutMany(ctx context.Context, values map[AzimuthKey]float64) error
}
