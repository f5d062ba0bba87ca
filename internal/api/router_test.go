package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngo-directory-service/internal/adapters/repositories"
	"ngo-directory-service/internal/api/dto"
	"ngo-directory-service/internal/api/handlers"
	"ngo-directory-service/internal/domain"
)

func newTestServer(t *testing.T, seed ...domain.NgoRecord) *httptest.Server {
	t.Helper()

	h := handlers.NewNgoHandler(repositories.NewMemoryNgoRepository(seed...))
	n := 0
	h.NewID = func() string {
		n++
		return "id-" + string(rune('0'+n))
	}

	srv := httptest.NewServer(newRouter(h, prometheus.NewRegistry()))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestCreateThenListKeepsInsertionOrder(t *testing.T) {
	srv := newTestServer(t, domain.NgoRecord{
		ID: "seeded", Name: "Seeded", Location: domain.Coordinate{Lat: 1, Lng: 2},
	})

	resp, body := do(t, http.MethodPost, srv.URL+"/ngos",
		`{"name":" Casa Azul ","address":"Rua A","objective":"Shelter","needs":"Food","latitude":-23.5,"longitude":-46.6}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var created dto.NgoResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, dto.NgoResponse{
		ID: "id-1", Name: "Casa Azul", Address: "Rua A", Objective: "Shelter",
		Needs: "Food", Latitude: -23.5, Longitude: -46.6,
	}, created)

	resp, body = do(t, http.MethodGet, srv.URL+"/ngos", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []dto.NgoResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 2)
	assert.Equal(t, "seeded", list[0].ID)
	assert.Equal(t, "id-1", list[1].ID)
}

func TestListEmptyIsArray(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, http.MethodGet, srv.URL+"/ngos", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

func TestCreateRejectsInvalidBodies(t *testing.T) {
	srv := newTestServer(t)

	cases := map[string]string{
		"malformed json":    `{"name":`,
		"unknown field":     `{"name":"A","latitude":1,"longitude":1,"id":"client-made"}`,
		"two objects":       `{"name":"A","latitude":1,"longitude":1}{}`,
		"blank name":        `{"name":"   ","latitude":1,"longitude":1}`,
		"missing latitude":  `{"name":"A","longitude":1}`,
		"latitude too big":  `{"name":"A","latitude":90.5,"longitude":1}`,
		"longitude too big": `{"name":"A","latitude":1,"longitude":-181}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp, b := do(t, http.MethodPost, srv.URL+"/ngos", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(b))

			var e map[string]any
			require.NoError(t, json.Unmarshal(b, &e))
			assert.NotEmpty(t, e["error"])
		})
	}

	_, body := do(t, http.MethodGet, srv.URL+"/ngos", "")
	assert.JSONEq(t, `[]`, string(body), "rejected requests must not store anything")
}

func TestCreateAcceptsZeroCoordinates(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, http.MethodPost, srv.URL+"/ngos", `{"name":"Null Island","latitude":0,"longitude":0}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
}

func TestGetNgo(t *testing.T) {
	srv := newTestServer(t, domain.NgoRecord{ID: "abc", Name: "ABC", Location: domain.Coordinate{Lat: 3, Lng: 4}})

	resp, body := do(t, http.MethodGet, srv.URL+"/ngos/abc", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"id":"abc","name":"ABC","address":"","objective":"","needs":"","latitude":3,"longitude":4}`, string(body))

	resp, body = do(t, http.MethodGet, srv.URL+"/ngos/missing", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), `"error"`)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	do(t, http.MethodPost, srv.URL+"/ngos", `{"name":"A","latitude":1,"longitude":1}`)
	do(t, http.MethodGet, srv.URL+"/ngos/x", "")

	resp, body := do(t, http.MethodGet, srv.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "ngo_registry_ngos_created_total 1")
	assert.Contains(t, string(body), `route="/ngos/{id}"`)
}
