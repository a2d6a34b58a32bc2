package travelapi

import (
	"context"
	"fmt"
	"sync"

	"trip-planner-service/internal/domain"
)

// MockResponse is a scripted reply of MockGenerator. When Release is set the
// reply is held until the channel is closed, regardless of cancellation, to
// model a slow server whose answer still arrives.
type MockResponse struct {
	Itinerary domain.Itinerary
	Err       error
	Release   <-chan struct{}
}

// MockGenerator is an in-memory ItineraryGenerator keyed by destination.
type MockGenerator struct {
	mu        sync.Mutex
	responses map[string]MockResponse
	calls     []domain.TripRequest
}

func NewMockGenerator(responses map[string]MockResponse) *MockGenerator {
	return &MockGenerator{responses: responses}
}

func (m *MockGenerator) GenerateItinerary(ctx context.Context, req domain.TripRequest) (domain.Itinerary, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	r, ok := m.responses[req.Destination]
	m.mu.Unlock()

	if !ok {
		return domain.Itinerary{}, &domain.ServiceError{
			Op:      "mock.GenerateItinerary",
			Status:  404,
			Message: fmt.Sprintf("no scripted itinerary for %q", req.Destination),
		}
	}
	if r.Release != nil {
		<-r.Release
	}
	if r.Err != nil {
		return domain.Itinerary{}, r.Err
	}
	return r.Itinerary.Clone(), nil
}

// Calls returns the requests received so far.
func (m *MockGenerator) Calls() []domain.TripRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.TripRequest(nil), m.calls...)
}
