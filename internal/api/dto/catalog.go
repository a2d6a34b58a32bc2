package dto

import "trip-planner-service/internal/domain"

type ThemesResponse struct {
	Current string         `json:"current"`
	Themes  []domain.Theme `json:"themes"`
}

type LandmarksResponse struct {
	Landmarks []domain.Landmark `json:"landmarks"`
}

type PhotoResponse struct {
	GeneratedImageURL string `json:"generatedImageUrl"`
}

type SurpriseResponse struct {
	Destination string `json:"destination"`
	Days        int    `json:"days"`
	Budget      int    `json:"budget"`
	ImageURL    string `json:"imageUrl"`
}
