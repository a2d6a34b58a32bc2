package travelapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"

	"go.uber.org/zap"
)

func (c *Client) FlightPrices(
	ctx context.Context,
	destination string,
	origin string,
) (_ domain.FlightPrices, err error) {
	defer obs.Time(ctx, c.log, "travelapi.FlightPrices")(&err)

	q := url.Values{}
	q.Set("destination", destination)
	q.Set("origin", origin)

	var out domain.FlightPrices
	if err := c.lookup(ctx, "flights", "/get-flight-prices", q, &out); err != nil {
		return domain.FlightPrices{}, err
	}
	return out, nil
}

func (c *Client) LiveEvents(ctx context.Context, destination string) (_ []domain.Event, err error) {
	defer obs.Time(ctx, c.log, "travelapi.LiveEvents")(&err)

	q := url.Values{}
	q.Set("destination", destination)

	var out domain.EventList
	if err := c.lookup(ctx, "events", "/get-live-events", q, &out); err != nil {
		return nil, err
	}
	if out.Events == nil {
		return []domain.Event{}, nil
	}
	return out.Events, nil
}

func (c *Client) Weather(ctx context.Context, destination string) (_ domain.Weather, err error) {
	defer obs.Time(ctx, c.log, "travelapi.Weather")(&err)

	q := url.Values{}
	q.Set("destination", destination)

	var out domain.Weather
	if err := c.lookup(ctx, "weather", "/get-weather", q, &out); err != nil {
		return domain.Weather{}, err
	}
	return out, nil
}

func (c *Client) HotelPrices(ctx context.Context, destination string) (_ domain.HotelPrices, err error) {
	defer obs.Time(ctx, c.log, "travelapi.HotelPrices")(&err)

	q := url.Values{}
	q.Set("destination", destination)

	var out domain.HotelPrices
	if err := c.lookup(ctx, "hotels", "/get-hotel-prices", q, &out); err != nil {
		return domain.HotelPrices{}, err
	}
	return out, nil
}

// lookup serves a GET lookup from the cache when possible. Only bodies
// that decode successfully are written back.
func (c *Client) lookup(ctx context.Context, kind, path string, q url.Values, out any) error {
	op := "travelapi.lookup." + kind
	key := cacheKey(q)

	if c.cache != nil {
		raw, ok, err := c.cache.Get(ctx, kind, key)
		if err != nil {
			c.log.Warn("lookup cache read failed", zap.String("kind", kind), zap.Error(err))
		}
		if ok {
			if err := json.Unmarshal(raw, out); err == nil {
				return nil
			}
			c.log.Warn("lookup cache entry undecodable", zap.String("kind", kind), zap.String("key", key))
		}
	}

	raw, err := c.doBytes(ctx, op, http.MethodGet, path, q, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.DecodeError{Op: op, Err: err}
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, kind, key, raw); err != nil {
			c.log.Warn("lookup cache write failed", zap.String("kind", kind), zap.Error(err))
		}
	}
	return nil
}

// cacheKey normalizes query values so "Paris " and "paris" share an entry.
func cacheKey(q url.Values) string {
	norm := url.Values{}
	for k, vs := range q {
		for _, v := range vs {
			norm.Add(k, strings.ToLower(strings.Join(strings.Fields(v), " ")))
		}
	}
	return norm.Encode()
}
