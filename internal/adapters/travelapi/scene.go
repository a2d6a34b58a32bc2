package travelapi

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

type sceneResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"image_url"`
	Error    string `json:"error"`
}

// GenerateScene asks the planning service for a weather scene and downloads
// the resulting image.
func (c *Client) GenerateScene(ctx context.Context, req ports.SceneRequest) (_ []byte, err error) {
	const op = "travelapi.GenerateScene"
	defer obs.Time(ctx, c.log, op)(&err)

	var sr sceneResponse
	if err := c.doJSON(ctx, op, http.MethodPost, "/generate-weather-scene", nil, req, &sr); err != nil {
		return nil, err
	}
	if !sr.Success || strings.TrimSpace(sr.ImageURL) == "" {
		msg := sr.Error
		if msg == "" {
			msg = "scene generation returned no image"
		}
		return nil, &domain.DecodeError{Op: op, Err: errors.New(msg)}
	}

	return c.fetchImage(ctx, sr.ImageURL)
}

// fetchImage downloads an image URL; data: URLs are decoded in place.
func (c *Client) fetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	const op = "travelapi.fetchImage"

	if strings.HasPrefix(imageURL, "data:") {
		comma := strings.IndexByte(imageURL, ',')
		if comma < 0 || !strings.Contains(imageURL[:comma], ";base64") {
			return nil, &domain.DecodeError{Op: op, Err: errors.New("unsupported data url")}
		}
		b, err := base64.StdEncoding.DecodeString(imageURL[comma+1:])
		if err != nil {
			return nil, &domain.DecodeError{Op: op, Err: fmt.Errorf("decode data url: %w", err)}
		}
		return b, nil
	}

	b, err := c.doBytes(ctx, op, http.MethodGet, imageURL, nil, nil)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, &domain.DecodeError{Op: op, Err: errors.New("empty image body")}
	}
	return b, nil
}
