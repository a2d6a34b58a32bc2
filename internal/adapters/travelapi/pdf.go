package travelapi

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
)

// RenderPDF posts the itinerary to the PDF endpoint and returns the document.
// A body that is not a PDF is a DecodeError.
func (c *Client) RenderPDF(ctx context.Context, it domain.Itinerary) (_ []byte, err error) {
	const op = "travelapi.RenderPDF"
	defer obs.Time(ctx, c.log, op)(&err)

	body := map[string]any{"itinerary": it}
	b, err := c.doBytes(ctx, op, http.MethodPost, "/generate-itinerary-pdf", nil, body)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		return nil, &domain.DecodeError{Op: op, Err: errors.New("response is not a PDF document")}
	}
	return b, nil
}
