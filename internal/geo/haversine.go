// Package geo holds the great-circle math used to rank NGOs by proximity.
package geo

import (
	"math"

	"ngo-directory-service/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Distance returns the great-circle distance in kilometers between a and b
// using the haversine formula.
//
// The longitude delta only enters through sin², so 179 vs -179 yields the short
// path across the antimeridian. Identical inputs yield exactly 0.
func Distance(a, b domain.Coordinate) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng

	// Rounding can push h marginally past 1 for antipodal points.
	h = math.Min(math.Max(h, 0), 1)

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
