package geocoding

import (
	"context"

	"github.com/rs/zerolog/log"

	"ngo-directory-service/internal/domain"
	"ngo-directory-service/internal/ports"
)

// CachingReverseGeocoder consults a GeocodeCache before the wrapped geocoder.
// Cache failures are logged and never change the lookup outcome; only
// successful resolutions are stored.
type CachingReverseGeocoder struct {
	next  ports.ReverseGeocoder
	cache ports.GeocodeCache
}

func NewCachingReverseGeocoder(next ports.ReverseGeocoder, cache ports.GeocodeCache) *CachingReverseGeocoder {
	return &CachingReverseGeocoder{next: next, cache: cache}
}

func (g *CachingReverseGeocoder) ReverseGeocode(ctx context.Context, c domain.Coordinate) (string, error) {
	if g.cache != nil {
		addr, ok, err := g.cache.Get(ctx, c)
		if err != nil {
			log.Warn().Err(err).Stringer("coord", c).Msg("geocode cache read failed")
		} else if ok {
			return addr, nil
		}
	}

	addr, err := g.next.ReverseGeocode(ctx, c)
	if err != nil {
		return "", err
	}

	if g.cache != nil {
		if err := g.cache.Put(ctx, c, addr); err != nil {
			log.Warn().Err(err).Stringer("coord", c).Msg("geocode cache write failed")
		}
	}

	return addr, nil
}
