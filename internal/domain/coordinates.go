package domain

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Immutable geographic coordinate (latitude, longitude) in decimal degrees.
// Out-of-range and non-finite values are rejected rather than clamped.
type Coordinate struct {
	Lat float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Lng float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// NewCoordinate builds a validated Coordinate.
func NewCoordinate(lat, lng float64) (Coordinate, error) {
	c := Coordinate{Lat: lat, Lng: lng}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

// Validate reports a ValidationRejected error when either component is outside
// its range. NaN and ±Inf fail the range checks as well.
func (c Coordinate) Validate() error {
	if err := validate.Struct(c); err != nil {
		return WrapErrorf(err, ErrValidationRejected, "coordinate %s is out of range", c)
	}
	return nil
}

// String renders the coordinate as "lat,lng", the form geocoding providers expect.
func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

// ParseCoordinate reads the "lat,lng" form produced by String.
func ParseCoordinate(s string) (Coordinate, error) {
	latText, lngText, ok := strings.Cut(s, ",")
	if !ok {
		return Coordinate{}, WrapErrorf(nil, ErrValidationRejected, "coordinate %q must be \"lat,lng\"", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latText), 64)
	if err != nil {
		return Coordinate{}, WrapErrorf(err, ErrValidationRejected, "latitude %q is not a number", latText)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngText), 64)
	if err != nil {
		return Coordinate{}, WrapErrorf(err, ErrValidationRejected, "longitude %q is not a number", lngText)
	}

	return NewCoordinate(lat, lng)
}
