package geocoding

import (
	"context"
	"errors"
	"strings"

	"googlemaps.github.io/maps"

	"ngo-directory-service/internal/domain"
	"ngo-directory-service/internal/platform/obs"
)

// GoogleReverseGeocoder resolves coordinates with the Google Geocoding API.
// The first result's formatted_address is authoritative.
type GoogleReverseGeocoder struct {
	client   *maps.Client
	language string
}

// NewGoogleReverseGeocoder builds a geocoder keyed by apiKey. Extra options
// (base URL, HTTP client) are forwarded to the maps client.
func NewGoogleReverseGeocoder(apiKey string, language string, opts ...maps.ClientOption) (*GoogleReverseGeocoder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google maps api key is empty")
	}

	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, err
	}

	return &GoogleReverseGeocoder{client: client, language: language}, nil
}

func (g *GoogleReverseGeocoder) ReverseGeocode(ctx context.Context, c domain.Coordinate) (_ string, err error) {
	defer obs.Time(ctx, "google.ReverseGeocode")(&err)

	if err := c.Validate(); err != nil {
		return "", err
	}

	results, err := g.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng:   &maps.LatLng{Lat: c.Lat, Lng: c.Lng},
		Language: g.language,
	})
	if err != nil {
		// The client surfaces non-OK statuses as errors, ZERO_RESULTS included.
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return "", noAddress(c)
		}
		return "", unavailable(err, c)
	}

	for _, r := range results {
		if addr := strings.TrimSpace(r.FormattedAddress); addr != "" {
			return addr, nil
		}
	}

	return "", noAddress(c)
}
