package travelapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

type photoResponse struct {
	GeneratedImageURL string `json:"generatedImageUrl"`
}

func (c *Client) GenerateTravelPhoto(ctx context.Context, req ports.PhotoRequest) (_ string, err error) {
	const op = "travelapi.GenerateTravelPhoto"
	defer obs.Time(ctx, c.log, op)(&err)

	var pr photoResponse
	if err := c.doJSON(ctx, op, http.MethodPost, "/generate-travel-photo", nil, req, &pr); err != nil {
		return "", err
	}
	if strings.TrimSpace(pr.GeneratedImageURL) == "" {
		return "", &domain.DecodeError{Op: op, Err: errors.New("missing generatedImageUrl")}
	}
	return pr.GeneratedImageURL, nil
}
