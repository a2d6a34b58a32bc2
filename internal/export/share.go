package export

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"

	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const shareHighlights = 3

// QR image edge bounds in pixels.
const (
	defaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

// ShareText is the short summary handed to share targets.
func ShareText(it domain.Itinerary) string {
	v := domain.NewView(it)

	var b strings.Builder
	fmt.Fprintf(&b, "Check out my %d-day trip to %s!\n\n", it.Duration, it.Destination)
	fmt.Fprintf(&b, "Budget: $%s\n", v.BudgetTotal())
	fmt.Fprintf(&b, "%d activities planned\n", v.TotalActivities())

	if hl := v.TopHighlights(shareHighlights); len(hl) > 0 {
		b.WriteString("\nHighlights:\n")
		for i, h := range hl {
			fmt.Fprintf(&b, "%d. %s\n", i+1, h)
		}
	}
	return b.String()
}

func ShareTitle(it domain.Itinerary) string {
	return fmt.Sprintf("My %s Trip", it.Destination)
}

// ShareQR encodes the share text as a PNG QR code. A size of zero or less
// selects the default; other sizes are clamped to [64, 1024] pixels.
func ShareQR(it domain.Itinerary, size int) ([]byte, error) {
	switch {
	case size <= 0:
		size = defaultQRSize
	case size < minQRSize:
		size = minQRSize
	case size > maxQRSize:
		size = maxQRSize
	}
	png, err := qrcode.Encode(ShareText(it), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode share qr: %w", err)
	}
	return png, nil
}

// ShareResult reports which target received the share text.
type ShareResult string

const (
	SharedNative    ShareResult = "native"
	SharedClipboard ShareResult = "clipboard"
	ShareCancelled  ShareResult = "cancelled"
)

// Sharer sends the share text to the native share sheet and falls back to
// the clipboard when that is missing or fails. Native may be nil.
type Sharer struct {
	Native    ports.NativeSharer
	Clipboard ports.Clipboard
	Log       *zap.Logger
}

func (s *Sharer) Share(ctx context.Context, it domain.Itinerary) (ShareResult, error) {
	text := ShareText(it)

	if s.Native != nil {
		err := s.Native.Share(ctx, ShareTitle(it), text)
		switch {
		case err == nil:
			return SharedNative, nil
		case errors.Is(err, ports.ErrShareCancelled):
			return ShareCancelled, nil
		case !errors.Is(err, ports.ErrShareUnavailable) && s.Log != nil:
			s.Log.Info("native share failed, copying to clipboard", zap.Error(err))
		}
	}

	if s.Clipboard == nil {
		return "", errors.New("share: no clipboard available")
	}
	if err := s.Clipboard.WriteText(ctx, text); err != nil {
		return "", fmt.Errorf("share: copy to clipboard: %w", err)
	}
	return SharedClipboard, nil
}
