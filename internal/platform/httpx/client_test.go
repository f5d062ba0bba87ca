package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoWithRetryRecoversFromTransientStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("Authorization"))
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, WithHeader("Authorization", "secret"), WithRetry(4, time.Millisecond))

	resp, err := c.DoWithRetry(context.Background(), func() (*http.Request, error) {
		return c.NewRequest(context.Background(), http.MethodGet, c.URL("/ping"), nil)
	})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, int32(3), calls.Load())
}

func TestDoWithRetryStopsOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad input", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, WithRetry(4, time.Millisecond))

	_, err := c.DoWithRetry(context.Background(), func() (*http.Request, error) {
		return c.NewRequest(context.Background(), http.MethodGet, c.URL("ping"), nil)
	})
	require.Error(t, err)

	assert.Equal(t, http.StatusBadRequest, StatusCode(err))
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, IsTransient(err))
}

func TestDoWithRetryHonorsCancellation(t *testing.T) {
	c := New("http://127.0.0.1:1", time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.DoWithRetry(ctx, func() (*http.Request, error) {
		return c.NewRequest(ctx, http.MethodGet, c.URL("ping"), nil)
	})
	assert.ErrorIs(t, err, context.Canceled)
}
