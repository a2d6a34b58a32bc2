package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Session bundles the flow controller and exports of one planning session.
type Session struct {
	Planner *Planner
	Exports *Exports

	lastSeen time.Time
}

// Sessions keeps one Session per id, created on first use.
type Sessions struct {
	mu      sync.Mutex
	byID    map[string]*Session
	newFunc func(ctx context.Context, id string) *Session
	now     func() time.Time

	// Builds run outside mu; concurrent first uses of an id share one build.
	building singleflight.Group
}

func NewSessions(newFunc func(ctx context.Context, id string) *Session) *Sessions {
	return &Sessions{
		byID:    make(map[string]*Session),
		newFunc: newFunc,
		now:     time.Now,
	}
}

func (s *Sessions) Get(ctx context.Context, id string) *Session {
	if sess, ok := s.touch(id); ok {
		return sess
	}

	v, _, _ := s.building.Do(id, func() (any, error) {
		if sess, ok := s.touch(id); ok {
			return sess, nil
		}
		sess := s.newFunc(ctx, id)

		s.mu.Lock()
		defer s.mu.Unlock()
		sess.lastSeen = s.now()
		s.byID[id] = sess
		return sess, nil
	})
	return v.(*Session)
}

func (s *Sessions) touch(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byID[id]
	if ok {
		sess.lastSeen = s.now()
	}
	return sess, ok
}

// Sweep drops sessions idle for longer than maxIdle and returns how many
// were removed. Persisted plans survive and are restored on next use.
func (s *Sessions) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	n := 0
	for id, sess := range s.byID {
		if sess.lastSeen.Before(cutoff) {
			delete(s.byID, id)
			n++
		}
	}
	return n
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}
