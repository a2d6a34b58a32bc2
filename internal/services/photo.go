package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"trip-planner-service/internal/catalog"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

const (
	maxPhotoSide  = 1024
	maxPhotoBytes = 10 << 20
)

type PhotoInput struct {
	Image      io.Reader
	LandmarkID string
	UseAI      bool
}

// PhotoService composites a user photo into a curated landmark scene.
type PhotoService struct {
	gen     ports.PhotoGenerator
	catalog *catalog.Catalog
	log     *zap.Logger
}

func NewPhotoService(gen ports.PhotoGenerator, cat *catalog.Catalog, log *zap.Logger) *PhotoService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PhotoService{gen: gen, catalog: cat, log: log}
}

// Generate downsizes the photo, encodes it as a JPEG data URL and returns
// the URL of the generated image.
func (s *PhotoService) Generate(ctx context.Context, in PhotoInput) (_ string, err error) {
	landmark, ok := s.catalog.Landmark(strings.TrimSpace(in.LandmarkID))
	if !ok {
		return "", &domain.ValidationError{Code: "unknown_landmark", Message: fmt.Sprintf("unknown landmark %q", in.LandmarkID)}
	}
	if in.Image == nil {
		return "", &domain.ValidationError{Code: "missing_image", Message: "a photo is required"}
	}

	defer obs.Time(ctx, s.log, "photo.Generate")(&err)

	dataURL, err := encodePhoto(in.Image)
	if err != nil {
		return "", err
	}

	return s.gen.GenerateTravelPhoto(ctx, ports.PhotoRequest{
		UserImage:          dataURL,
		LandmarkID:         landmark.ID,
		BackgroundImageURL: landmark.BackgroundImageURL,
		UseAI:              in.UseAI,
	})
}

func encodePhoto(r io.Reader) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxPhotoBytes+1))
	if err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}
	if len(raw) > maxPhotoBytes {
		return "", &domain.ValidationError{Code: "image_too_large", Message: "photo exceeds 10 MB"}
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return "", &domain.ValidationError{Code: "invalid_image", Message: "photo is not a supported image"}
	}
	if b := img.Bounds(); b.Dx() > maxPhotoSide || b.Dy() > maxPhotoSide {
		img = imaging.Fit(img, maxPhotoSide, maxPhotoSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("encode photo: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
