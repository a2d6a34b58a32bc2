package services

import (
	"context"
	"errors"
	"sync"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/export"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"go.uber.org/zap"
)

type ExportKind string

const (
	ExportText     ExportKind = "text"
	ExportPDF      ExportKind = "pdf"
	ExportShare    ExportKind = "share"
	ExportPostcard ExportKind = "postcard"
)

type ExportState string

const (
	ExportIdle    ExportState = "idle"
	ExportRunning ExportState = "running"
	ExportDone    ExportState = "done"
	ExportFailed  ExportState = "failed"
)

type ExportStatus struct {
	State ExportState `json:"state"`
	Error *ErrorInfo  `json:"error,omitempty"`
}

// File is a named download.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// Exports runs export operations against the planner's current itinerary.
// Each kind keeps its own status; none of them touches the planner state.
type Exports struct {
	planner   *Planner
	pdf       ports.PDFRenderer
	postcards *export.PostcardRenderer
	sharer    *export.Sharer
	log       *zap.Logger

	mu     sync.Mutex
	status map[ExportKind]ExportStatus
}

func NewExports(
	planner *Planner,
	pdf ports.PDFRenderer,
	postcards *export.PostcardRenderer,
	sharer *export.Sharer,
	log *zap.Logger,
) *Exports {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exports{
		planner:   planner,
		pdf:       pdf,
		postcards: postcards,
		sharer:    sharer,
		log:       log,
		status:    make(map[ExportKind]ExportStatus),
	}
}

func (e *Exports) Status(kind ExportKind) ExportStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s, ok := e.status[kind]; ok {
		return s
	}
	return ExportStatus{State: ExportIdle}
}

func (e *Exports) Statuses() map[ExportKind]ExportStatus {
	out := make(map[ExportKind]ExportStatus, 4)
	for _, k := range []ExportKind{ExportText, ExportPDF, ExportShare, ExportPostcard} {
		out[k] = e.Status(k)
	}
	return out
}

func (e *Exports) set(kind ExportKind, s ExportStatus) {
	e.mu.Lock()
	e.status[kind] = s
	e.mu.Unlock()
}

// run executes fn on a snapshot of the current itinerary and records the
// outcome under kind.
func (e *Exports) run(ctx context.Context, kind ExportKind, fn func(domain.Itinerary) error) (err error) {
	it, ok := e.planner.Current()
	if !ok {
		return ErrNoItinerary
	}
	defer obs.Time(ctx, e.log, "exports."+string(kind))(&err)

	e.set(kind, ExportStatus{State: ExportRunning})
	if err = fn(it); err != nil {
		e.set(kind, ExportStatus{State: ExportFailed, Error: NewErrorInfo(err)})
		return err
	}
	e.set(kind, ExportStatus{State: ExportDone})
	return nil
}

func (e *Exports) Text(ctx context.Context) (File, error) {
	var f File
	err := e.run(ctx, ExportText, func(it domain.Itinerary) error {
		f = File{
			Name:        export.Filename(it.Destination, "itinerary", "txt"),
			ContentType: "text/plain; charset=utf-8",
			Body:        []byte(export.TextReport(it)),
		}
		return nil
	})
	return f, err
}

func (e *Exports) PDF(ctx context.Context) (File, error) {
	var f File
	err := e.run(ctx, ExportPDF, func(it domain.Itinerary) error {
		b, err := e.pdf.RenderPDF(ctx, it)
		if err != nil {
			return err
		}
		f = File{
			Name:        export.Filename(it.Destination, "itinerary", "pdf"),
			ContentType: "application/pdf",
			Body:        b,
		}
		return nil
	})
	return f, err
}

// ShareText returns the share summary without sending it anywhere.
func (e *Exports) ShareText(ctx context.Context) (string, error) {
	var text string
	err := e.run(ctx, ExportShare, func(it domain.Itinerary) error {
		text = export.ShareText(it)
		return nil
	})
	return text, err
}

func (e *Exports) ShareQR(ctx context.Context, size int) (File, error) {
	var f File
	err := e.run(ctx, ExportShare, func(it domain.Itinerary) error {
		b, err := export.ShareQR(it, size)
		if err != nil {
			return err
		}
		f = File{
			Name:        export.Filename(it.Destination, "share", "png"),
			ContentType: "image/png",
			Body:        b,
		}
		return nil
	})
	return f, err
}

// Share hands the summary to the configured sharer. Cancellation by the
// user counts as done.
func (e *Exports) Share(ctx context.Context) (export.ShareResult, error) {
	var res export.ShareResult
	err := e.run(ctx, ExportShare, func(it domain.Itinerary) error {
		if e.sharer == nil {
			return errors.New("share: no share target configured")
		}
		var err error
		res, err = e.sharer.Share(ctx, it)
		return err
	})
	return res, err
}

func (e *Exports) Postcard(ctx context.Context, opts export.PostcardOptions) (export.Postcard, error) {
	var pc export.Postcard
	err := e.run(ctx, ExportPostcard, func(it domain.Itinerary) error {
		var err error
		pc, err = e.postcards.Render(ctx, it, opts)
		return err
	})
	return pc, err
}
