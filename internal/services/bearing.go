package services

import (
	"math"
	"sunside-service/internal/domain"
)

// Mean Earth radius (IUGG).
const earthRadiusMeters = 6371008.8

// ComputeBearing returns the initial great-circle bearing from a to b in
// degrees within [0, 360), 0 being true north and increasing clockwise.
//
// A zero-length segment yields 0; callers should skip such segments.
func ComputeBearing(a, b domain.Coordinates) float64 {
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)
	deltaLon := toRad(b.Lon - a.Lon)

	y := math.Sin(deltaLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(deltaLon)

	return normalizeDegrees(toDeg(math.Atan2(y, x)))
}

// DistanceMeters returns the great-circle (haversine) distance between a and b.
func DistanceMeters(a, b domain.Coordinates) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// CompassPoint names a bearing on the 8-point compass.
// NaN and infinite bearings have no name and return "".
func CompassPoint(bearing float64) string {
	if math.IsNaN(bearing) || math.IsInf(bearing, 0) {
		return ""
	}
	points := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	return points[int(normalizeDegrees(bearing+22.5)/45)%8]
}

// normalizeDegrees maps any angle into [0, 360).
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg+360, 360)
	if deg < 0 {
		deg += 360
	}
	// math.Mod can round a tiny negative input up to exactly 360.
	if deg >= 360 {
		deg = 0
	}
	return deg
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

func toDeg(rad float64) float64 { return rad * 180 / math.Pi }
