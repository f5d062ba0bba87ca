package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngo-directory-service/internal/adapters/repositories"
	"ngo-directory-service/internal/api"
	"ngo-directory-service/internal/domain"
)

func newRegistry(t *testing.T, seed ...domain.NgoRecord) string {
	t.Helper()
	srv := httptest.NewServer(api.NewRouter(repositories.NewMemoryNgoRepository(seed...), prometheus.NewRegistry()))
	t.Cleanup(srv.Close)
	return srv.URL
}

func ngoctl(t *testing.T, registryURL string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	base := []string{
		"--registry-url", registryURL,
		"--geocoder", "offline",
		"--geocode-cache", "none",
		"--default-lat=-23.5505",
		"--default-lng=-46.6333",
		"--log-level", "error",
	}
	err := run(context.Background(), append(base, args...), &out)
	return out.String(), err
}

var seeded = []domain.NgoRecord{
	{ID: "rio", Name: "Rede Rio", Needs: "Food", Location: domain.Coordinate{Lat: -22.9068, Lng: -43.1729}},
	{ID: "santos", Name: "Mar Limpo", Needs: "Gloves", Location: domain.Coordinate{Lat: -23.9608, Lng: -46.3336}},
	{ID: "campinas", Name: "Biblioteca", Location: domain.Coordinate{Lat: -22.9056, Lng: -47.0608}},
}

func TestNearbyOrdersByDistance(t *testing.T) {
	url := newRegistry(t, seeded...)

	out, err := ngoctl(t, url, "nearby", "--lat=-23.5505", "--lng=-46.6333")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "santos"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "campinas"), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "rio"), lines[3])
	assert.Contains(t, lines[1], " km")
	assert.NotContains(t, out, "default region")
}

func TestNearbyFallsBackToDefaultRegion(t *testing.T) {
	t.Setenv(positionEnv, "")
	url := newRegistry(t, seeded...)

	out, err := ngoctl(t, url, "nearby", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "default region (-23.5505,-46.6333)")
	assert.Contains(t, out, "santos")
	assert.NotContains(t, out, "rio ")
}

func TestNearbyUsesPositionFromEnvironment(t *testing.T) {
	t.Setenv(positionEnv, "-22.9068,-43.1729")
	url := newRegistry(t, seeded...)

	out, err := ngoctl(t, url, "nearby", "--limit", "1")
	require.NoError(t, err)
	assert.NotContains(t, out, "default region")
	assert.Contains(t, out, "0.00 km")
}

func TestNearbyEmptyRegistry(t *testing.T) {
	url := newRegistry(t)

	out, err := ngoctl(t, url, "nearby", "--lat", "0", "--lng", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "No NGOs registered yet.")
}

func TestNearbyRegistryDown(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	_, err := ngoctl(t, url, "nearby", "--lat", "0", "--lng", "0")
	assert.ErrorIs(t, err, domain.ErrRegistryUnavailable)
}

func TestShow(t *testing.T) {
	url := newRegistry(t, seeded...)

	out, err := ngoctl(t, url, "show", "santos")
	require.NoError(t, err)
	assert.Contains(t, out, "Mar Limpo")
	assert.Contains(t, out, "Gloves")

	_, err = ngoctl(t, url, "show", "nope")
	assert.ErrorIs(t, err, domain.ErrNgoNotFound)
}

func TestRegisterThenNearby(t *testing.T) {
	url := newRegistry(t, seeded...)

	out, err := ngoctl(t, url, "register",
		"--name", "Casa Azul",
		"--objective", "Shelter",
		"--address", "Rua das Flores, 12",
		"--pick-lat=-23.56", "--pick-lng=-46.64",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "keeping the typed address")
	assert.Contains(t, out, `Registered "Casa Azul"`)

	out, err = ngoctl(t, url, "nearby", "--lat=-23.56", "--lng=-46.64", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Casa Azul")
	assert.Contains(t, out, "0.00 km")
}

func TestRegisterRejectsBadCoordinatesLocally(t *testing.T) {
	url := newRegistry(t)

	_, err := ngoctl(t, url, "register", "--name", "Casa", "--lat", "north", "--lng=-46")
	assert.ErrorIs(t, err, domain.ErrValidationRejected)

	out, err := ngoctl(t, url, "nearby", "--lat", "0", "--lng", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "No NGOs registered yet.")
}

func TestResolveOffline(t *testing.T) {
	_, err := ngoctl(t, "http://localhost:1", "resolve", "--lat=-23.5", "--lng=-46.6")
	assert.ErrorIs(t, err, domain.ErrNoAddressFound)
}
