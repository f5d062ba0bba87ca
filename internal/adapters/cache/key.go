package cache

import (
	"math"
	"strconv"

	"ngo-directory-service/internal/domain"
)

// keyPrecision keeps six decimals (~0.1 m), so repeated taps on the same spot
// share an entry without merging distinct buildings.
const keyPrecision = 6

// Key normalizes a coordinate into a cache key.
func Key(c domain.Coordinate) string {
	return keyPart(c.Lat) + "," + keyPart(c.Lng)
}

func keyPart(v float64) string {
	scale := math.Pow10(keyPrecision)
	r := math.Round(v*scale) / scale
	if r == 0 {
		// Values that round to zero from below would print as "-0.000000".
		r = 0
	}
	return strconv.FormatFloat(r, 'f', keyPrecision, 64)
}
