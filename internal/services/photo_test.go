package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"trip-planner-service/internal/catalog"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePhotoGenerator struct {
	got ports.PhotoRequest
}

func (f *fakePhotoGenerator) GenerateTravelPhoto(ctx context.Context, req ports.PhotoRequest) (string, error) {
	f.got = req
	return "https://images.example/generated.jpg", nil
}

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return cat
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPhotoGenerateDownsizes(t *testing.T) {
	gen := &fakePhotoGenerator{}
	svc := NewPhotoService(gen, defaultCatalog(t), nil)

	url, err := svc.Generate(context.Background(), PhotoInput{
		Image:      bytes.NewReader(pngBytes(t, 2048, 1024)),
		LandmarkID: "eiffel-tower",
		UseAI:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://images.example/generated.jpg", url)

	assert.Equal(t, "eiffel-tower", gen.got.LandmarkID)
	assert.NotEmpty(t, gen.got.BackgroundImageURL)
	assert.True(t, gen.got.UseAI)

	const prefix = "data:image/jpeg;base64,"
	require.True(t, strings.HasPrefix(gen.got.UserImage, prefix))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(gen.got.UserImage, prefix))
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 512, cfg.Height)
}

func TestPhotoGenerateValidation(t *testing.T) {
	svc := NewPhotoService(&fakePhotoGenerator{}, defaultCatalog(t), nil)

	cases := []struct {
		name string
		in   PhotoInput
		code string
	}{
		{"unknown landmark", PhotoInput{Image: bytes.NewReader(pngBytes(t, 10, 10)), LandmarkID: "atlantis"}, "unknown_landmark"},
		{"missing image", PhotoInput{LandmarkID: "santorini"}, "missing_image"},
		{"not an image", PhotoInput{Image: strings.NewReader("hello"), LandmarkID: "santorini"}, "invalid_image"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Generate(context.Background(), tc.in)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.code, verr.Code)
		})
	}
}
