package handlers

import (
	"net/http"
	"strconv"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/services"

	"go.uber.org/zap"
)

const maxUploadBytes = 12 << 20

type PhotoHandler struct {
	Photos *services.PhotoService
	Log    *zap.Logger
}

// Generate accepts a multipart form with "photo", "landmarkId" and an
// optional "useAI" field.
func (h *PhotoHandler) Generate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeFailure(w, r, h.Log, &domain.ValidationError{Code: "invalid_upload", Message: "expected a multipart form with a photo"})
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		writeFailure(w, r, h.Log, &domain.ValidationError{Code: "missing_image", Message: "a photo is required"})
		return
	}
	defer file.Close()

	useAI := true
	if v := r.FormValue("useAI"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			useAI = b
		}
	}

	url, err := h.Photos.Generate(r.Context(), services.PhotoInput{
		Image:      file,
		LandmarkID: r.FormValue("landmarkId"),
		UseAI:      useAI,
	})
	if err != nil {
		writeFailure(w, r, h.Log, err)
		return
	}
	writeJSON(w, r, h.Log, http.StatusOK, dto.PhotoResponse{GeneratedImageURL: url})
}
