package services

import (
	"context"
	"strings"
	"sync"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Lookup task names, also used as keys of DestinationReport.Unavailable.
const (
	TaskFlights = "flights"
	TaskEvents  = "events"
	TaskWeather = "weather"
	TaskHotels  = "hotels"
)

// DestinationReport holds whatever the four lookups returned. A task that
// failed leaves its field nil and is listed in Unavailable.
type DestinationReport struct {
	Destination string               `json:"destination"`
	Origin      string               `json:"origin"`
	Flights     *domain.FlightPrices `json:"flights,omitempty"`
	Events      []domain.Event       `json:"events,omitempty"`
	Weather     *domain.Weather      `json:"weather,omitempty"`
	Hotels      *domain.HotelPrices  `json:"hotels,omitempty"`
	Unavailable map[string]string    `json:"unavailable,omitempty"`

	errs map[string]error
}

// Err returns the error of a failed task, or nil.
func (r DestinationReport) Err(task string) error {
	return r.errs[task]
}

func (r DestinationReport) Complete() bool {
	return len(r.errs) == 0
}

// SearchDestination runs the flight, event, weather and hotel lookups
// concurrently and waits for all of them. One failing lookup never cancels
// the others.
func SearchDestination(
	ctx context.Context,
	lookup ports.DestinationLookup,
	destination string,
	origin string,
	log *zap.Logger,
) (_ DestinationReport, err error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return DestinationReport{}, &domain.ValidationError{Code: "missing_destination", Message: "destination is required"}
	}
	origin = strings.TrimSpace(origin)
	if origin == "" {
		origin = domain.DefaultOrigin
	}
	if log == nil {
		log = zap.NewNop()
	}
	defer obs.Time(ctx, log, "search.Destination")(&err)

	report := DestinationReport{Destination: destination, Origin: origin}

	var mu sync.Mutex
	fail := func(task string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if report.errs == nil {
			report.errs = make(map[string]error)
			report.Unavailable = make(map[string]string)
		}
		report.errs[task] = domain.Degrade(task, err)
		report.Unavailable[task] = err.Error()
	}

	// Tasks report through fail and always return nil so Wait settles all.
	var g errgroup.Group
	g.Go(func() error {
		f, err := lookup.FlightPrices(ctx, destination, origin)
		if err != nil {
			fail(TaskFlights, err)
			return nil
		}
		mu.Lock()
		report.Flights = &f
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		ev, err := lookup.LiveEvents(ctx, destination)
		if err != nil {
			fail(TaskEvents, err)
			return nil
		}
		mu.Lock()
		report.Events = ev
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		w, err := lookup.Weather(ctx, destination)
		if err != nil {
			fail(TaskWeather, err)
			return nil
		}
		mu.Lock()
		report.Weather = &w
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		h, err := lookup.HotelPrices(ctx, destination)
		if err != nil {
			fail(TaskHotels, err)
			return nil
		}
		mu.Lock()
		report.Hotels = &h
		mu.Unlock()
		return nil
	})
	_ = g.Wait()

	for task, e := range report.errs {
		log.Info("destination lookup unavailable", zap.String("task", task), zap.Error(e))
	}
	return report, nil
}
