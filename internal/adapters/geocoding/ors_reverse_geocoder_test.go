package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngo-directory-service/internal/domain"
	"ngo-directory-service/internal/platform/httpx"
)

var paulista = domain.Coordinate{Lat: -23.5614, Lng: -46.6559}

func newORS(t *testing.T, h http.HandlerFunc) *ORSReverseGeocoder {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	g, err := NewORSReverseGeocoder("ors-key", srv.URL, time.Second, httpx.WithRetry(2, time.Millisecond))
	require.NoError(t, err)
	return g
}

func TestORSReverseGeocode(t *testing.T) {
	g := newORS(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/reverse", r.URL.Path)
		assert.Equal(t, "ors-key", r.Header.Get("Authorization"))
		assert.Equal(t, "-23.5614", r.URL.Query().Get("point.lat"))
		assert.Equal(t, "-46.6559", r.URL.Query().Get("point.lon"))

		w.Write([]byte(`{"features":[{"properties":{"label":"Av. Paulista, São Paulo, SP, Brazil"}},{"properties":{"label":"other"}}]}`))
	})

	addr, err := g.ReverseGeocode(context.Background(), paulista)
	require.NoError(t, err)
	assert.Equal(t, "Av. Paulista, São Paulo, SP, Brazil", addr)
}

func TestORSReverseGeocodeNoFeatures(t *testing.T) {
	g := newORS(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[]}`))
	})

	_, err := g.ReverseGeocode(context.Background(), paulista)
	assert.ErrorIs(t, err, domain.ErrNoAddressFound)
}

func TestORSReverseGeocodeProviderFailure(t *testing.T) {
	tests := []struct {
		name string
		h    http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}},
		{"forbidden", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"quota"}`, http.StatusForbidden)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"features":`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newORS(t, tt.h)

			_, err := g.ReverseGeocode(context.Background(), paulista)
			assert.ErrorIs(t, err, domain.ErrGeocodingUnavailable)
			assert.NotErrorIs(t, err, domain.ErrNoAddressFound)
		})
	}
}

func TestORSReverseGeocodeRejectsInvalidCoordinate(t *testing.T) {
	g := newORS(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("provider must not be called")
	})

	_, err := g.ReverseGeocode(context.Background(), domain.Coordinate{Lat: 91})
	assert.ErrorIs(t, err, domain.ErrValidationRejected)
}

func TestNewORSReverseGeocoderRequiresKey(t *testing.T) {
	_, err := NewORSReverseGeocoder(" ", "", time.Second)
	assert.Error(t, err)
}
