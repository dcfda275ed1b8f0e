package geoip

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mynet/sales/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.GeoConfig{Endpoint: server.URL + "/json/%s", Timeout: time.Second})
}

func TestClient_Lookup(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json/211.234.10.1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","country":"South Korea","countryCode":"KR"}`))
	})

	loc, err := client.Lookup(context.Background(), "211.234.10.1")
	require.NoError(t, err)
	assert.Equal(t, "South Korea", loc.Country)
	assert.Equal(t, "KR", loc.CountryCode)
}

func TestClient_Lookup_Failures(t *testing.T) {
	t.Run("unsuccessful status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":"fail","message":"reserved range"}`))
		})
		_, err := client.Lookup(context.Background(), "8.8.8.8")
		assert.ErrorIs(t, err, ErrLookupFailed)
	})

	t.Run("http error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
		_, err := client.Lookup(context.Background(), "8.8.8.8")
		assert.ErrorIs(t, err, ErrLookupFailed)
	})

	t.Run("malformed body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		})
		_, err := client.Lookup(context.Background(), "8.8.8.8")
		assert.ErrorContains(t, err, "failed to parse response")
	})

	t.Run("unreachable", func(t *testing.T) {
		client := NewClient(config.GeoConfig{Endpoint: "http://127.0.0.1:1/json/%s", Timeout: 100 * time.Millisecond})
		_, err := client.Lookup(context.Background(), "8.8.8.8")
		assert.ErrorIs(t, err, ErrLookupUnavailable)
	})
}
