package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ngo-directory-service/internal/domain"
	"ngo-directory-service/internal/platform/httpx"
	"ngo-directory-service/internal/platform/obs"
)

const defaultORSBaseURL = "https://api.openrouteservice.org"

type reverseResponse struct {
	Features []struct {
		Properties struct {
			Label string `json:"label"`
		} `json:"properties"`
	} `json:"features"`
}

// ORSReverseGeocoder resolves coordinates using OpenRouteService (/geocode/reverse).
// Lookups are idempotent and retried on transient failures.
//
// The geocoder is safe for concurrent use.
type ORSReverseGeocoder struct {
	client *httpx.Client
}

func NewORSReverseGeocoder(
	apiKey string,
	baseURL string,
	timeout time.Duration,
	opts ...httpx.Option,
) (*ORSReverseGeocoder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if baseURL == "" {
		baseURL = defaultORSBaseURL
	}

	return &ORSReverseGeocoder{
		client: httpx.New(baseURL, timeout, append([]httpx.Option{httpx.WithHeader("Authorization", apiKey)}, opts...)...),
	}, nil
}

func (o *ORSReverseGeocoder) ReverseGeocode(ctx context.Context, c domain.Coordinate) (_ string, err error) {
	defer obs.Time(ctx, "ors.ReverseGeocode")(&err)

	if err := c.Validate(); err != nil {
		return "", err
	}

	endpoint := o.client.URL("/geocode/reverse")

	resp, err := o.client.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.client.NewRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("point.lon", strconv.FormatFloat(c.Lng, 'f', -1, 64))
		q.Set("point.lat", strconv.FormatFloat(c.Lat, 'f', -1, 64))
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return "", unavailable(err, c)
	}
	defer resp.Body.Close()

	var decoded reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", unavailable(fmt.Errorf("decode reverse geocode response: %w", err), c)
	}

	for _, f := range decoded.Features {
		if label := strings.TrimSpace(f.Properties.Label); label != "" {
			return label, nil
		}
	}

	return "", noAddress(c)
}
