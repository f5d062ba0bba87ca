// Package location provides LocationSensor implementations for processes
// without a device GPS: fixed positions, environment variables and a chain
// that falls through on refusal.
package location

import (
	"context"
	"errors"
	"os"
	"strings"

	"ngo-directory-service/internal/domain"
	"ngo-directory-service/internal/ports"
)

// Fixed always reports the same position.
type Fixed struct {
	Position domain.Coordinate
}

func (f Fixed) CurrentPosition(ctx context.Context) (domain.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinate{}, err
	}
	return f.Position, nil
}

// Denied behaves like a device whose user refused location access.
type Denied struct{}

func (Denied) CurrentPosition(ctx context.Context) (domain.Coordinate, error) {
	return domain.Coordinate{}, domain.WrapErrorf(nil, domain.ErrPermissionDenied, "location access was not granted")
}

// Env reads a "lat,lng" position from an environment variable. An unset
// variable counts as refused access; a malformed one is a sensor failure.
type Env struct {
	Key string
}

func (e Env) CurrentPosition(ctx context.Context) (domain.Coordinate, error) {
	v, ok := os.LookupEnv(e.Key)
	if !ok || strings.TrimSpace(v) == "" {
		return domain.Coordinate{}, domain.WrapErrorf(nil, domain.ErrPermissionDenied, "%s is not set", e.Key)
	}
	return domain.ParseCoordinate(v)
}

// Chain asks each sensor in turn and moves on only when access is refused.
// If every sensor refuses, the last refusal is returned.
type Chain []ports.LocationSensor

func (c Chain) CurrentPosition(ctx context.Context) (domain.Coordinate, error) {
	var err error = domain.WrapErrorf(nil, domain.ErrPermissionDenied, "no location source available")
	for _, s := range c {
		var pos domain.Coordinate
		pos, err = s.CurrentPosition(ctx)
		if err == nil {
			return pos, nil
		}
		if !errors.Is(err, domain.ErrPermissionDenied) {
			return domain.Coordinate{}, err
		}
	}
	return domain.Coordinate{}, err
}
