package ar

import (
	"context"
	"sync"
)

// Session ties one tracking backend to one anchor registry and one
// resolver. Sessions are explicit: there is no process-wide tracking
// singleton, so multiple independent sessions (and deterministic tests
// over scripted backends) coexist freely.
//
// All Session methods except RequestHit's internal completion are
// confined to the host's update goroutine, matching Registry's
// threading contract. Start launches the one background goroutine the
// session owns, the pose-feed pump.
type Session struct {
	backend  TrackingBackend
	registry *Registry
	resolver *Resolver

	// completions buffers finished asynchronous hit queries until the
	// next Step drains them on the update turn.
	completionsMu sync.Mutex
	completions   []func()

	pumpDone chan struct{}
	closed   bool
}

// NewSession initializes the backend and assembles a session over it.
// The backend is required; everything else has defaults.
func NewSession(b TrackingBackend, opts ...SessionOption) (*Session, error) {
	if b == nil {
		return nil, ErrNoBackend
	}

	o := defaultSessionOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.logger != nil {
		if ls, ok := b.(LoggerSetter); ok {
			ls.SetLogger(o.logger)
		}
	}

	if err := b.Init(); err != nil {
		return nil, err
	}

	reg := o.registry
	if reg == nil {
		ropts := []RegistryOption{WithStaleBudget(o.calib.StaleFrameBudget)}
		if o.idSource != nil {
			ropts = append(ropts, WithIDSource(o.idSource))
		}
		reg = NewRegistry(ropts...)
	}

	Logger().Info("ar: session created", "backend", b.Name())
	return &Session{
		backend:  b,
		registry: reg,
		resolver: NewResolver(b, reg, o.calib),
	}, nil
}

// Registry returns the session's anchor registry.
func (s *Session) Registry() *Registry { return s.registry }

// Backend returns the session's tracking backend.
func (s *Session) Backend() TrackingBackend { return s.backend }

// SetCalibration swaps the calibration used for subsequent resolutions.
// Wire a CalibrationWatcher callback here for live tuning; as with all
// session mutation, call it from the update goroutine.
func (s *Session) SetCalibration(c Calibration) { s.resolver.SetCalibration(c) }

// ResolveHit synchronously resolves a screen tap. See
// Resolver.ResolveHit for the full contract. Update-goroutine only.
func (s *Session) ResolveHit(ctx context.Context, x, y float64, active *Space) (*AnchorOffset, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	return s.resolver.ResolveHit(ctx, x, y, active)
}

// RequestHit issues a hit test without blocking the frame loop. The
// backend query runs on its own goroutine; the registry work and the fn
// callback are deferred to the next Step call, keeping all anchor
// mutation on the update turn.
//
// One outstanding request per tap gesture is the intended usage.
// Callers that invalidate a gesture before the result arrives simply
// ignore the callback; there is no cancellation beyond ctx.
func (s *Session) RequestHit(ctx context.Context, x, y float64, active *Space, fn func(*AnchorOffset, error)) {
	if s.closed {
		fn(nil, ErrSessionClosed)
		return
	}
	go func() {
		candidates, err := s.backend.HitTest(ctx, x, y)
		s.completionsMu.Lock()
		s.completions = append(s.completions, func() {
			if err != nil {
				fn(nil, &BackendQueryError{Backend: s.backend.Name(), Err: err})
				return
			}
			best := PickHit(candidates)
			if best == nil {
				fn(nil, nil)
				return
			}
			off, err := s.resolver.bind(best, active)
			fn(off, err)
		})
		s.completionsMu.Unlock()
	}()
}

// Start launches the pose-feed pump: backend pose updates are enqueued
// into the registry until the feed closes or ctx is done. Call Step
// each frame to apply them.
func (s *Session) Start(ctx context.Context) {
	if s.pumpDone != nil || s.closed {
		return
	}
	s.pumpDone = make(chan struct{})
	feed := s.backend.PoseUpdates()
	go func() {
		defer close(s.pumpDone)
		for {
			select {
			case u, ok := <-feed:
				if !ok {
					return
				}
				s.registry.EnqueueUpdate(u)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Step runs one update turn: queued pose updates are applied, anchor
// tracking states age, and finished asynchronous hit requests complete.
// Call once per frame from the update goroutine.
func (s *Session) Step() {
	if s.closed {
		return
	}
	s.registry.ApplyUpdates()
	s.registry.Tick()

	s.completionsMu.Lock()
	done := s.completions
	s.completions = nil
	s.completionsMu.Unlock()
	for _, fn := range done {
		fn()
	}
}

// Close shuts down the backend and stops the pose pump. Idempotent.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.backend.Close()
	if s.pumpDone != nil {
		<-s.pumpDone
	}
	Logger().Info("ar: session closed", "backend", s.backend.Name())
}
