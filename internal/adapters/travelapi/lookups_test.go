package travelapi

import (
	"context"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"trip-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	mu sync.Mutex
	m  map[string][]byte
}

func (c *memoryCache) Get(ctx context.Context, kind, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.m[kind+"|"+key]
	return b, ok, nil
}

func (c *memoryCache) Put(ctx context.Context, kind, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m == nil {
		c.m = make(map[string][]byte)
	}
	c.m[kind+"|"+key] = value
	return nil
}

func TestLookupsDecodeLooseShapes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/get-flight-prices", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Paris", r.URL.Query().Get("destination"))
		assert.Equal(t, "Boston", r.URL.Query().Get("origin"))
		io.WriteString(w, `{"economy": 450, "premium": "900", "business": "$2,100", "origin": "Boston"}`)
	})
	mux.HandleFunc("/get-hotel-prices", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"budget": 80, "standard": 150, "luxury": 400}`)
	})
	mux.HandleFunc("/get-weather", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"temperature": 18, "condition": "Cloudy", "humidity": "70%", "wind": "12 km/h"}`)
	})
	mux.HandleFunc("/get-live-events", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	f, err := c.FlightPrices(ctx, "Paris", "Boston")
	require.NoError(t, err)
	assert.Equal(t, domain.Amount(2100), f.Business)
	assert.Equal(t, domain.Amount(900), f.Premium)

	h, err := c.HotelPrices(ctx, "Paris")
	require.NoError(t, err)
	assert.Equal(t, domain.Amount(400), h.Luxury)

	w, err := c.Weather(ctx, "Paris")
	require.NoError(t, err)
	assert.Equal(t, domain.Text("18"), w.Temperature)

	ev, err := c.LiveEvents(ctx, "Paris")
	require.NoError(t, err)
	assert.NotNil(t, ev)
	assert.Empty(t, ev)
}

func TestLookupUsesCache(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		io.WriteString(w, `{"budget": 80, "standard": 150, "luxury": 400}`)
	}), WithLookupCache(&memoryCache{}))
	ctx := context.Background()

	_, err := c.HotelPrices(ctx, "Paris")
	require.NoError(t, err)
	h, err := c.HotelPrices(ctx, "  paris ")
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, domain.Amount(150), h.Standard)
}

func TestLookupDoesNotCacheFailures(t *testing.T) {
	var hits atomic.Int32
	cache := &memoryCache{}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		io.WriteString(w, `not json`)
	}), WithLookupCache(cache))

	_, err := c.Weather(context.Background(), "Paris")
	assert.Equal(t, domain.KindDecode, domain.Kind(err))
	_, err = c.Weather(context.Background(), "Paris")
	assert.Error(t, err)

	assert.Equal(t, int32(2), hits.Load())
	assert.Empty(t, cache.m)
}
