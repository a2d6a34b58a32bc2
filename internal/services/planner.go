package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"go.uber.org/zap"
)

// ErrSuperseded is returned to a submission whose result arrived after a
// newer submission (or a reset) took its place. The result is discarded.
var ErrSuperseded = errors.New("planner: request superseded by a newer submission")

// ErrNoItinerary is returned when an operation needs an installed itinerary.
var ErrNoItinerary = errors.New("planner: no itinerary")

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailed     State = "failed"
)

// Snapshot is the serializable state of a planning session.
type Snapshot struct {
	State     State               `json:"state"`
	Request   *domain.TripRequest `json:"request,omitempty"`
	Itinerary *domain.Itinerary   `json:"itinerary,omitempty"`
	Error     *ErrorInfo          `json:"error,omitempty"`
}

type ErrorInfo struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Retriable bool   `json:"retriable"`
}

func NewErrorInfo(err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	return &ErrorInfo{Kind: domain.Kind(err), Message: err.Error(), Retriable: domain.Retriable(err)}
}

// Planner is the flow controller of one planning session. Submissions are
// last-write-wins: each one cancels its predecessor, and only the result of
// the most recent submission is ever installed.
type Planner struct {
	gen           ports.ItineraryGenerator
	store         ports.PlanStore
	sessionID     string
	defaultOrigin string
	log           *zap.Logger

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	state   State
	request *domain.TripRequest
	lastErr error

	// Swapped in one step; readers never see a partial itinerary.
	current atomic.Pointer[domain.Itinerary]

	// Serializes plan store writes. Held across the sequence check and the
	// write so a stale save can never land after a newer save or a reset.
	persistMu sync.Mutex
}

type PlannerOption func(*Planner)

// WithPlanStore persists every installed itinerary under the session id.
func WithPlanStore(store ports.PlanStore) PlannerOption {
	return func(p *Planner) { p.store = store }
}

func WithDefaultOrigin(origin string) PlannerOption {
	return func(p *Planner) { p.defaultOrigin = origin }
}

func NewPlanner(sessionID string, gen ports.ItineraryGenerator, log *zap.Logger, opts ...PlannerOption) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Planner{
		gen:           gen,
		sessionID:     sessionID,
		defaultOrigin: domain.DefaultOrigin,
		log:           log.With(zap.String("session_id", sessionID)),
		state:         StateIdle,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Planner) SessionID() string { return p.sessionID }

// Submit validates the form and requests an itinerary. Validation errors
// return before any network call and leave the state unchanged.
func (p *Planner) Submit(ctx context.Context, form domain.TripForm) (_ domain.Itinerary, err error) {
	req, err := domain.BuildTripRequest(form, p.defaultOrigin)
	if err != nil {
		return domain.Itinerary{}, err
	}

	defer obs.Time(ctx, p.log, "planner.Submit")(&err)

	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p.mu.Lock()
	p.seq++
	seq := p.seq
	if p.cancel != nil {
		p.cancel()
	}
	p.cancel = cancel
	p.state = StateSubmitting
	p.request = &req
	p.lastErr = nil
	p.mu.Unlock()

	it, genErr := p.gen.GenerateItinerary(reqCtx, req)
	if genErr == nil {
		if verr := it.Validate(); verr != nil {
			genErr = &domain.DecodeError{Op: "planner.Submit", Err: verr}
		}
	}

	p.mu.Lock()
	if seq != p.seq {
		p.mu.Unlock()
		p.log.Debug("discarding superseded result", zap.Uint64("seq", seq))
		return domain.Itinerary{}, ErrSuperseded
	}
	p.cancel = nil
	if genErr != nil {
		p.state = StateFailed
		p.lastErr = genErr
		p.mu.Unlock()
		return domain.Itinerary{}, fmt.Errorf("plan trip to %q: %w", req.Destination, genErr)
	}
	installed := it.Clone()
	p.current.Store(&installed)
	p.state = StateSuccess
	p.mu.Unlock()

	p.persist(ctx, seq, installed)
	return installed.Clone(), nil
}

// persist writes the itinerary to the plan store unless seq has been
// superseded in the meantime. A failure degrades reload continuity only;
// the flow has already succeeded.
func (p *Planner) persist(ctx context.Context, seq uint64, it domain.Itinerary) {
	if p.store == nil {
		return
	}

	p.persistMu.Lock()
	defer p.persistMu.Unlock()

	if !p.isCurrent(seq) {
		p.log.Debug("skipping save of superseded plan", zap.Uint64("seq", seq))
		return
	}
	if err := p.store.SavePlan(context.WithoutCancel(ctx), p.sessionID, it); err != nil {
		p.log.Warn("plan not persisted", zap.Error(domain.Degrade("plan_persistence", err)))
	}
}

func (p *Planner) isCurrent(seq uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return seq == p.seq
}

// Current returns a copy of the installed itinerary.
func (p *Planner) Current() (domain.Itinerary, bool) {
	it := p.current.Load()
	if it == nil {
		return domain.Itinerary{}, false
	}
	return it.Clone(), true
}

func (p *Planner) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Snapshot{State: p.state, Error: NewErrorInfo(p.lastErr)}
	if p.request != nil {
		r := *p.request
		s.Request = &r
	}
	if it, ok := p.Current(); ok {
		s.Itinerary = &it
	}
	return s
}

// Reset discards the itinerary and returns to Idle ("Plan Another Trip").
// An in-flight submission is cancelled and its result will be discarded.
func (p *Planner) Reset(ctx context.Context) {
	p.mu.Lock()
	p.seq++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.state = StateIdle
	p.request = nil
	p.lastErr = nil
	p.current.Store(nil)
	p.mu.Unlock()

	if p.store == nil {
		return
	}

	// Waits for an in-progress save so the delete is the last write. A plan
	// installed since the reset is saved by its own submission.
	p.persistMu.Lock()
	defer p.persistMu.Unlock()
	if p.current.Load() != nil {
		return
	}
	if err := p.store.DeletePlan(context.WithoutCancel(ctx), p.sessionID); err != nil {
		p.log.Warn("stored plan not deleted", zap.Error(domain.Degrade("plan_persistence", err)))
	}
}

// Restore installs the persisted itinerary of the session, if any. It does
// nothing once a submission has started.
func (p *Planner) Restore(ctx context.Context) (bool, error) {
	if p.store == nil {
		return false, nil
	}
	it, ok, err := p.store.LoadPlan(ctx, p.sessionID)
	if err != nil {
		return false, fmt.Errorf("restore plan: %w", err)
	}
	if !ok {
		return false, nil
	}
	if err := it.Validate(); err != nil {
		return false, fmt.Errorf("restore plan: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.seq != 0 || p.current.Load() != nil {
		return false, nil
	}
	p.current.Store(&it)
	p.state = StateSuccess
	return true, nil
}
