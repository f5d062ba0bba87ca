// Package config holds the option groups shared by the commands. Values come
// from flags, then environment variables, then a .env file loaded by LoadEnv.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"ngo-directory-service/internal/domain"
)

// LoadEnv loads .env style files into the process environment. Variables that
// are already set win. A missing file is not an error.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, p := range paths {
		err := godotenv.Load(p)
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("path", p).Msg("no env file found (using environment variables)")
			continue
		}
		if err != nil {
			return fmt.Errorf("load env file %q: %w", p, err)
		}
	}

	return nil
}

type Database struct {
	URL string `long:"database-url" env:"DATABASE_URL" description:"Postgres connection string (empty keeps NGOs in memory)"`
}

type Listen struct {
	Addr string `short:"a" long:"addr" env:"LISTEN_ADDRESS" description:"Address to listen on" default:"0.0.0.0"`
	Port int    `short:"p" long:"port" env:"LISTEN_PORT"    description:"Port to listen on"    default:"8080"`
}

func (l Listen) Address() string {
	return fmt.Sprintf("%s:%d", l.Addr, l.Port)
}

type Registry struct {
	URL     string        `long:"registry-url"     env:"REGISTRY_URL"     description:"Base URL of the NGO registry" default:"http://localhost:8080"`
	Timeout time.Duration `long:"registry-timeout" env:"REGISTRY_TIMEOUT" description:"Per-request timeout"          default:"10s"`
}

type Geocoder struct {
	Provider   string        `long:"geocoder"         env:"GEOCODER"         description:"Reverse geocoding provider"         default:"google" choice:"google" choice:"ors" choice:"offline"`
	MapsAPIKey string        `long:"maps-api-key"     env:"MAPS_API_KEY"     description:"Google Maps API key"`
	ORSAPIKey  string        `long:"ors-api-key"      env:"ORS_API_KEY"      description:"OpenRouteService API key"`
	ORSURL     string        `long:"ors-url"          env:"ORS_URL"          description:"OpenRouteService base URL"          default:"https://api.openrouteservice.org"`
	Language   string        `long:"geocode-language" env:"GEOCODE_LANGUAGE" description:"Language of resolved addresses"     default:"pt-BR"`
	Timeout    time.Duration `long:"geocode-timeout"  env:"GEOCODE_TIMEOUT"  description:"Per-request timeout"                default:"10s"`
	Cache      string        `long:"geocode-cache"    env:"GEOCODE_CACHE"    description:"Reverse geocode cache backend"      default:"none" choice:"none" choice:"postgres" choice:"redis"`
	RedisAddr  string        `long:"redis-addr"       env:"REDIS_ADDR"       description:"Redis address for the geocode cache" default:"localhost:6379"`
	CacheTTL   time.Duration `long:"geocode-ttl"      env:"GEOCODE_TTL"      description:"Redis entry lifetime (0 keeps forever)" default:"720h"`
}

// Region is the reference used when location access is refused.
type Region struct {
	Lat float64 `long:"default-lat" env:"DEFAULT_LAT" description:"Default region latitude"  default:"-23.5505"`
	Lng float64 `long:"default-lng" env:"DEFAULT_LNG" description:"Default region longitude" default:"-46.6333"`
}

func (r Region) Coordinate() (domain.Coordinate, error) {
	c, err := domain.NewCoordinate(r.Lat, r.Lng)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("default region: %w", err)
	}
	return c, nil
}
