package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"

	"github.com/disintegration/imaging"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	postcardWidth  = 1200
	postcardHeight = 800

	defaultSceneTemperature = "25"
	defaultSceneCondition   = "sunny"
)

type PostcardOptions struct {
	ThemeID string
	// UseAI requests a generated weather scene as the background.
	UseAI       bool
	Temperature string
	Condition   string
	// Now picks the season sent with the scene request; zero means time.Now.
	Now time.Time
}

type Postcard struct {
	Filename string
	PNG      []byte
	Theme    domain.Theme
	// Scene is "generated" when the remote scene was used, else "illustrated".
	Scene string
}

// PostcardRenderer draws a themed postcard off-screen. Scenes may be nil,
// in which case the built-in illustrated scene is always used.
type PostcardRenderer struct {
	scenes ports.SceneGenerator
	log    *zap.Logger
}

func NewPostcardRenderer(scenes ports.SceneGenerator, log *zap.Logger) *PostcardRenderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &PostcardRenderer{scenes: scenes, log: log}
}

// Render never fails because of the background: a scene failure is logged
// as a degraded feature and the illustrated scene is drawn instead.
func (r *PostcardRenderer) Render(ctx context.Context, it domain.Itinerary, opts PostcardOptions) (Postcard, error) {
	theme := domain.LookupTheme(opts.ThemeID)
	canvas := image.NewRGBA(image.Rect(0, 0, postcardWidth, postcardHeight))

	sceneKind := "illustrated"
	if bg, err := r.scene(ctx, it, theme, opts); err != nil {
		r.log.Warn("postcard scene unavailable",
			zap.String("destination", it.Destination),
			zap.Error(domain.Degrade("postcard_scene", err)),
		)
		drawIllustratedScene(canvas, theme)
	} else {
		draw.Draw(canvas, canvas.Bounds(), imaging.Fill(bg, postcardWidth, postcardHeight, imaging.Center, imaging.Lanczos), image.Point{}, draw.Src)
		sceneKind = "generated"
	}

	if err := drawCardFront(canvas, it, theme); err != nil {
		return Postcard{}, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return Postcard{}, fmt.Errorf("encode postcard: %w", err)
	}

	return Postcard{
		Filename: PostcardFilename(it.Destination, theme),
		PNG:      buf.Bytes(),
		Theme:    theme,
		Scene:    sceneKind,
	}, nil
}

func PostcardFilename(destination string, theme domain.Theme) string {
	return Filename(destination, theme.Name+"-postcard", "png")
}

var errSceneDisabled = errors.New("generated scene disabled")

func (r *PostcardRenderer) scene(ctx context.Context, it domain.Itinerary, theme domain.Theme, opts PostcardOptions) (image.Image, error) {
	if !opts.UseAI || r.scenes == nil {
		return nil, errSceneDisabled
	}

	req := ports.SceneRequest{
		Destination:      it.Destination,
		Temperature:      firstNonEmpty(opts.Temperature, defaultSceneTemperature),
		WeatherCondition: firstNonEmpty(opts.Condition, defaultSceneCondition),
	}
	if theme.ID != domain.DefaultThemeID {
		req.Season = theme.ID
	} else {
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		req.Season = domain.CurrentSeason(now.Month())
	}

	raw, err := r.scenes.GenerateScene(ctx, req)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, &domain.DecodeError{Op: "export.postcardScene", Err: err}
	}
	return img, nil
}

func firstNonEmpty(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// drawIllustratedScene paints a sky gradient from the theme's secondary to
// accent colour with a sun and a horizon band.
func drawIllustratedScene(dst *image.RGBA, theme domain.Theme) {
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		t := float64(y-b.Min.Y) / float64(b.Dy())
		c := lerp(theme.Secondary, theme.Accent, t)
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetRGBA(x, y, c)
		}
	}

	sun := color.RGBA{R: 0xFF, G: 0xF1, B: 0xC1, A: 0xFF}
	cx, cy, rad := b.Dx()*3/4, b.Dy()/4, b.Dy()/8
	for y := cy - rad; y <= cy+rad; y++ {
		for x := cx - rad; x <= cx+rad; x++ {
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= rad*rad {
				dst.SetRGBA(x, y, sun)
			}
		}
	}

	horizon := image.Rect(b.Min.X, b.Max.Y-b.Dy()/5, b.Max.X, b.Max.Y)
	draw.Draw(dst, horizon, image.NewUniform(darken(theme.Secondary, 0.6)), image.Point{}, draw.Src)
}

func drawCardFront(dst *image.RGBA, it domain.Itinerary, theme domain.Theme) error {
	v := domain.NewView(it)
	b := dst.Bounds()

	// Translucent panel keeps text legible over any background.
	panel := image.Rect(40, 40, b.Dx()-40, b.Dy()-40)
	draw.Draw(dst, panel, image.NewUniform(color.RGBA{A: 0x80}), image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(panel.Min.X, panel.Min.Y, panel.Max.X, panel.Min.Y+12), image.NewUniform(theme.Accent), image.Point{}, draw.Src)

	x := panel.Min.X + 40
	drawText(dst, strings.ToUpper(theme.Name)+" GREETINGS FROM", x, panel.Min.Y+60, 2, theme.Text)
	drawText(dst, it.Destination, x, panel.Min.Y+150, 6, theme.Text)

	stats := fmt.Sprintf("%d DAYS   $%s BUDGET   %d ACTIVITIES", it.Duration, v.BudgetTotal(), v.TotalActivities())
	drawText(dst, stats, x, panel.Min.Y+230, 3, theme.Text)

	y := panel.Min.Y + 310
	for i, h := range v.TopHighlights(shareHighlights) {
		drawText(dst, fmt.Sprintf("%d. %s", i+1, h), x, y, 2, theme.Text)
		y += 40
	}

	qr, err := qrcode.New(ShareText(it), qrcode.Low)
	if err != nil {
		return fmt.Errorf("postcard qr: %w", err)
	}
	qr.ForegroundColor = theme.Secondary
	code := qr.Image(200)
	at := image.Pt(panel.Max.X-240, panel.Max.Y-240)
	draw.Draw(dst, code.Bounds().Add(at), code, code.Bounds().Min, draw.Src)
	return nil
}

// drawText renders s with the 7x13 bitmap face and scales it up by scale
// using nearest-neighbour so the glyphs stay crisp.
func drawText(dst *image.RGBA, s string, x, y, scale int, c color.RGBA) {
	if s == "" {
		return
	}
	face := basicfont.Face7x13
	w := font.MeasureString(face, s).Ceil()
	h := face.Height

	small := image.NewNRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(s)

	big := imaging.Resize(small, w*scale, h*scale, imaging.NearestNeighbor)
	r := big.Bounds().Add(image.Pt(x, y-h*scale))
	draw.Draw(dst, r, big, image.Point{}, draw.Over)
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 0xFF}
}

func darken(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f), A: c.A}
}
