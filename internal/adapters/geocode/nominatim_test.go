package geocode

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"trip-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeocoder(t *testing.T, h http.HandlerFunc) *NominatimGeocoder {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	g, err := NewNominatimGeocoder(srv.URL, "trip-planner-test/1.0", nil)
	require.NoError(t, err)
	return g
}

func TestReverseGeocodePrefersCity(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "40.712800", r.URL.Query().Get("lat"))
		assert.Equal(t, "trip-planner-test/1.0", r.Header.Get("User-Agent"))
		io.WriteString(w, `{"address": {"city": "New York", "town": "Ignored"}}`)
	})

	name, err := g.ReverseGeocode(context.Background(), 40.7128, -74.006)
	require.NoError(t, err)
	assert.Equal(t, "New York", name)
}

func TestReverseGeocodeFallsBackThroughTownAndVillage(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"address": {"town": "Hallstatt"}}`, "Hallstatt"},
		{`{"address": {"village": "Giethoorn"}}`, "Giethoorn"},
		{`{"address": {}}`, FallbackPlace},
	}
	for _, tc := range cases {
		body, want := tc.body, tc.want
		g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, body)
		})

		name, err := g.ReverseGeocode(context.Background(), 47.56, 13.65)
		require.NoError(t, err)
		assert.Equal(t, want, name)
	}
}

func TestReverseGeocodeErrors(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	})
	_, err := g.ReverseGeocode(context.Background(), 1, 1)
	assert.Equal(t, domain.KindService, domain.Kind(err))

	g = newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"error": "Unable to geocode"}`)
	})
	_, err = g.ReverseGeocode(context.Background(), 1, 1)
	assert.Equal(t, domain.KindService, domain.Kind(err))

	g = newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html>`)
	})
	_, err = g.ReverseGeocode(context.Background(), 1, 1)
	assert.Equal(t, domain.KindDecode, domain.Kind(err))
}

func TestReverseGeocodeRejectsBadCoordinates(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := g.ReverseGeocode(context.Background(), 91, 0)
	assert.Equal(t, domain.KindValidation, domain.Kind(err))
}

func TestNewNominatimGeocoderRequiresUserAgent(t *testing.T) {
	_, err := NewNominatimGeocoder("https://nominatim.example", " ", nil)
	assert.Error(t, err)
}
