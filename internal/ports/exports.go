package ports

import (
	"context"
	"errors"
	"trip-planner-service/internal/domain"
)

// Renders an itinerary as a PDF document.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, it domain.Itinerary) ([]byte, error)
}

// Request for a remotely generated postcard background.
type SceneRequest struct {
	Destination      string `json:"destination"`
	Temperature      string `json:"temperature"`
	WeatherCondition string `json:"weather_condition"`
	Season           string `json:"season,omitempty"`
}

// Produces a background scene image for a postcard.
type SceneGenerator interface {
	GenerateScene(ctx context.Context, req SceneRequest) ([]byte, error)
}

var (
	// ErrShareUnavailable means the platform has no native share facility.
	ErrShareUnavailable = errors.New("native share unavailable")
	// ErrShareCancelled means the user dismissed the share sheet.
	ErrShareCancelled = errors.New("share cancelled")
)

// Platform-native share sheet.
type NativeSharer interface {
	Share(ctx context.Context, title, text string) error
}

type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}
