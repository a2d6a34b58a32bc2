package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"trip-planner-service/internal/domain"
)

// tripFixture builds a complete itinerary with one activity per day.
func tripFixture(dest string, titles ...string) domain.Itinerary {
	days := make([]domain.DayPlan, 0, len(titles))
	for i, title := range titles {
		days = append(days, domain.DayPlan{
			Day:   i + 1,
			Title: title,
			Activities: []domain.Activity{{
				Time:        "10:00",
				Activity:    fmt.Sprintf("Activity %d", i+1),
				Description: "Something nice",
				Cost:        20,
			}},
			EstimatedDailyCost: 150,
		})
	}
	return domain.Itinerary{
		Destination:    dest,
		Duration:       len(titles),
		TotalBudget:    2000,
		CostBreakdown:  domain.CostBreakdown{{Key: "flights", Amount: 600}, {Key: "accommodation", Amount: 700}},
		DailyItinerary: days,
		TravelTips:     []string{"Carry cash"},
		PackingList:    []string{"Charger"},
	}
}

// boundaryFixture is the smallest valid itinerary: one day, no activities.
func boundaryFixture() domain.Itinerary {
	return domain.Itinerary{
		Destination:    "Reykjavik",
		Duration:       1,
		TotalBudget:    500,
		DailyItinerary: []domain.DayPlan{{Day: 1, Title: "Layover", Activities: []domain.Activity{}}},
	}
}

type memStore struct {
	mu      sync.Mutex
	plans   map[string]domain.Itinerary
	saveErr error
	saves   int
}

func newMemStore() *memStore {
	return &memStore{plans: make(map[string]domain.Itinerary)}
}

func (s *memStore) SavePlan(ctx context.Context, sessionID string, it domain.Itinerary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.plans[sessionID] = it.Clone()
	return nil
}

func (s *memStore) LoadPlan(ctx context.Context, sessionID string) (domain.Itinerary, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.plans[sessionID]
	return it, ok, nil
}

func (s *memStore) DeletePlan(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.plans, sessionID)
	return nil
}

func (s *memStore) get(sessionID string) (domain.Itinerary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.plans[sessionID]
	return it, ok
}

var errBoom = errors.New("boom")

// gatedStore holds SavePlan for one destination until release is closed.
type gatedStore struct {
	*memStore
	gate    string
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedStore(gate string) *gatedStore {
	return &gatedStore{
		memStore: newMemStore(),
		gate:     gate,
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
	}
}

func (s *gatedStore) SavePlan(ctx context.Context, sessionID string, it domain.Itinerary) error {
	if it.Destination == s.gate {
		s.once.Do(func() { close(s.entered) })
		<-s.release
	}
	return s.memStore.SavePlan(ctx, sessionID, it)
}
