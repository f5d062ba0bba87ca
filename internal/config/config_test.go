package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngo-directory-service/internal/domain"
)

func TestLoadEnvKeepsExistingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NGO_TEST_FROM_FILE=file\nNGO_TEST_PRESET=file\n"), 0o600))

	t.Setenv("NGO_TEST_PRESET", "process")
	t.Setenv("NGO_TEST_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("NGO_TEST_FROM_FILE"))

	require.NoError(t, LoadEnv(path, filepath.Join(t.TempDir(), "missing.env")))

	assert.Equal(t, "file", os.Getenv("NGO_TEST_FROM_FILE"))
	assert.Equal(t, "process", os.Getenv("NGO_TEST_PRESET"))
}

type testOptions struct {
	Geocoder Geocoder `group:"Geocoder"`
	Region   Region   `group:"Region"`
	Listen   Listen   `group:"Listen"`
}

func TestOptionDefaults(t *testing.T) {
	for _, k := range []string{"GEOCODER", "GEOCODE_CACHE", "DEFAULT_LAT", "DEFAULT_LNG", "LISTEN_PORT", "LISTEN_ADDRESS"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	var opts testOptions
	_, err := flags.NewParser(&opts, flags.None).ParseArgs(nil)
	require.NoError(t, err)

	assert.Equal(t, "google", opts.Geocoder.Provider)
	assert.Equal(t, "none", opts.Geocoder.Cache)
	assert.Equal(t, "0.0.0.0:8080", opts.Listen.Address())

	c, err := opts.Region.Coordinate()
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinate{Lat: -23.5505, Lng: -46.6333}, c)
}

func TestOptionsFromEnvironment(t *testing.T) {
	t.Setenv("GEOCODER", "ors")
	t.Setenv("GEOCODE_CACHE", "redis")
	t.Setenv("DEFAULT_LAT", "95")

	var opts testOptions
	_, err := flags.NewParser(&opts, flags.None).ParseArgs(nil)
	require.NoError(t, err)

	assert.Equal(t, "ors", opts.Geocoder.Provider)
	assert.Equal(t, "redis", opts.Geocoder.Cache)

	_, err = opts.Region.Coordinate()
	assert.ErrorIs(t, err, domain.ErrValidationRejected)
}

func TestOptionsRejectUnknownProvider(t *testing.T) {
	var opts testOptions
	_, err := flags.NewParser(&opts, flags.None).ParseArgs([]string{"--geocoder", "bing"})
	assert.Error(t, err)
}
