package geocoding

import (
	"ngo-directory-service/internal/domain"
)

func unavailable(cause error, c domain.Coordinate) error {
	return domain.WrapErrorf(cause, domain.ErrGeocodingUnavailable, "could not resolve an address for %s", c)
}

func noAddress(c domain.Coordinate) error {
	return domain.WrapErrorf(nil, domain.ErrNoAddressFound, "no address found for %s", c)
}
