package travelapi

import (
	"context"
	"net/http"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
)

type itineraryRequest struct {
	Destination string   `json:"destination"`
	Origin      string   `json:"origin"`
	Budget      int      `json:"budget"`
	Days        int      `json:"days"`
	Interests   []string `json:"interests"`
}

// GenerateItinerary posts the trip request to the itinerary endpoint.
// The response must decode into a complete itinerary; a partial one is a
// DecodeError.
func (c *Client) GenerateItinerary(
	ctx context.Context,
	req domain.TripRequest,
) (_ domain.Itinerary, err error) {
	const op = "travelapi.GenerateItinerary"
	defer obs.Time(ctx, c.log, op)(&err)

	interests := req.Interests
	if interests == nil {
		interests = []string{}
	}
	body := itineraryRequest{
		Destination: req.Destination,
		Origin:      req.Origin,
		Budget:      req.BudgetUSD,
		Days:        req.Days,
		Interests:   interests,
	}

	var it domain.Itinerary
	if err := c.doJSON(ctx, op, http.MethodPost, "/generate-ai-itinerary", nil, body, &it); err != nil {
		return domain.Itinerary{}, err
	}
	if err := it.Validate(); err != nil {
		return domain.Itinerary{}, &domain.DecodeError{Op: op, Err: err}
	}

	return it, nil
}
