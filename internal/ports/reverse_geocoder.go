package ports

import (
	"context"
	"ngo-directory-service/internal/domain"
)

// Contract for resolving a coordinate into a human-readable address.
type ReverseGeocoder interface {
	// Return the first formatted address for the coordinate. Fails with
	// domain.ErrNoAddressFound or domain.ErrGeocodingUnavailable.
	ReverseGeocode(ctx context.Context, c domain.Coordinate) (string, error)
}

// Optional persistence for reverse geocoding results.
type GeocodeCache interface {
	// Return the cached address and whether it was present.
	Get(ctx context.Context, c domain.Coordinate) (string, bool, error)
	Put(ctx context.Context, c domain.Coordinate, address string) error
}
