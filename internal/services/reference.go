package services

import (
	"context"
	"errors"

	"ngo-directory-service/internal/domain"
	"ngo-directory-service/internal/ports"
)

// Reference is the coordinate proximity is measured from.
// Fallback is set when the device refused location access and the default
// region is used instead; callers should tell the user.
type Reference struct {
	Coordinate domain.Coordinate
	Fallback   bool
}

// ResolveReference asks the sensor for a fix.
//
// Permission denial degrades to fallback. Any other sensor failure means there
// is no reference at all and is reported as domain.ErrNoReference, which callers
// must present as a blocking prompt rather than an empty list.
func ResolveReference(
	ctx context.Context,
	sensor ports.LocationSensor,
	fallback domain.Coordinate,
) (Reference, error) {
	if sensor == nil {
		return Reference{}, domain.WrapErrorf(nil, domain.ErrNoReference, "no location source configured")
	}

	pos, err := sensor.CurrentPosition(ctx)
	if errors.Is(err, domain.ErrPermissionDenied) {
		if verr := fallback.Validate(); verr != nil {
			return Reference{}, domain.WrapErrorf(verr, domain.ErrNoReference, "default region is invalid")
		}
		return Reference{Coordinate: fallback, Fallback: true}, nil
	}
	if err != nil {
		return Reference{}, domain.WrapErrorf(err, domain.ErrNoReference, "current location is unavailable")
	}

	if err := pos.Validate(); err != nil {
		return Reference{}, domain.WrapErrorf(err, domain.ErrNoReference, "current location is invalid")
	}

	return Reference{Coordinate: pos}, nil
}
