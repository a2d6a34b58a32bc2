package ports

import "context"

// Request to composite a user photo into a landmark scene.
type PhotoRequest struct {
	UserImage          string `json:"userImage"`
	LandmarkID         string `json:"landmarkId"`
	BackgroundImageURL string `json:"backgroundImageUrl"`
	UseAI              bool   `json:"useAI"`
}

type PhotoGenerator interface {
	// Returns the URL of the generated image.
	GenerateTravelPhoto(ctx context.Context, req PhotoRequest) (string, error)
}
