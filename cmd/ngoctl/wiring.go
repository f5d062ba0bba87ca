package main

import (
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"googlemaps.github.io/maps"

	"ngo-directory-service/internal/adapters/cache"
	"ngo-directory-service/internal/adapters/geocoding"
	"ngo-directory-service/internal/adapters/registry"
	"ngo-directory-service/internal/platform/db"
	"ngo-directory-service/internal/ports"
)

func (a *app) registry() (*registry.HTTPRegistryClient, error) {
	return registry.NewHTTPRegistryClient(a.opts.Registry.URL, a.opts.Registry.Timeout)
}

// geocoder builds the configured provider, wrapped in the configured cache.
// The returned func releases cache connections.
func (a *app) geocoder() (ports.ReverseGeocoder, func(), error) {
	g := a.opts.Geocoder
	noop := func() {}

	var provider ports.ReverseGeocoder
	switch g.Provider {
	case "google":
		gg, err := geocoding.NewGoogleReverseGeocoder(g.MapsAPIKey, g.Language,
			maps.WithHTTPClient(&http.Client{Timeout: g.Timeout}))
		if err != nil {
			return nil, noop, fmt.Errorf("google geocoder: %w", err)
		}
		provider = gg
	case "ors":
		og, err := geocoding.NewORSReverseGeocoder(g.ORSAPIKey, g.ORSURL, g.Timeout)
		if err != nil {
			return nil, noop, fmt.Errorf("ors geocoder: %w", err)
		}
		provider = og
	case "offline":
		// Never resolves; addresses must be typed.
		provider = geocoding.NewMockReverseGeocoder(nil)
	default:
		return nil, noop, fmt.Errorf("unknown geocoder %q", g.Provider)
	}

	switch g.Cache {
	case "postgres":
		conn, err := db.Open(a.ctx, a.opts.Database.URL)
		if err != nil {
			log.Warn().Err(err).Msg("geocode cache disabled")
			return provider, noop, nil
		}
		return geocoding.NewCachingReverseGeocoder(provider, cache.NewSQLReverseGeocodeCache(conn)),
			func() { _ = conn.Close() }, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: g.RedisAddr})
		return geocoding.NewCachingReverseGeocoder(provider, cache.NewRedisReverseGeocodeCache(rdb, g.CacheTTL)),
			func() { _ = rdb.Close() }, nil
	}

	return provider, noop, nil
}
