package backend

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gogpu/ar"
)

// Scripted is a deterministic tracking backend for tests and demos.
// Hit tests pop queued responses in FIFO order; once the script runs
// out, further queries see nothing there. Pose updates are emitted on
// demand with Report.
//
// Unlike the library proper, Scripted locks internally: test code
// queues responses from the test goroutine while the session queries
// from another.
type Scripted struct {
	mu          sync.Mutex
	script      []scriptedResponse
	feed        chan ar.PoseUpdate
	logger      *slog.Logger
	initialized bool
}

type scriptedResponse struct {
	candidates []ar.HitCandidate
	err        error
}

// NewScripted creates a scripted backend with an empty script.
func NewScripted() *Scripted {
	return &Scripted{}
}

// Name returns "scripted".
func (s *Scripted) Name() string { return BackendScripted }

// Init prepares the pose feed. The feed is buffered so Report never
// blocks a test that has not started a session pump.
func (s *Scripted) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feed = make(chan ar.PoseUpdate, 64)
	s.initialized = true
	return nil
}

// Close closes the pose feed and clears any unconsumed script.
func (s *Scripted) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	s.initialized = false
	s.script = nil
	close(s.feed)
}

// QueueHits appends one hit-test response carrying the given
// candidates. An empty slice scripts a "nothing there" answer.
func (s *Scripted) QueueHits(candidates []ar.HitCandidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.script = append(s.script, scriptedResponse{candidates: candidates})
}

// QueueError appends one failing hit-test response.
func (s *Scripted) QueueError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.script = append(s.script, scriptedResponse{err: err})
}

// Report emits a pose update on the feed, as a real backend would when
// it refines a tracked surface. Dropped with a warning if the buffered
// feed is full or the backend is closed.
func (s *Scripted) Report(u ar.PoseUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		s.log().Warn("backend: scripted report after close", "anchor", u.AnchorID)
		return
	}
	select {
	case s.feed <- u:
	default:
		s.log().Warn("backend: scripted feed full, update dropped", "anchor", u.AnchorID)
	}
}

// HitTest pops the next scripted response.
func (s *Scripted) HitTest(ctx context.Context, x, y float64) ([]ar.HitCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return nil, ErrNotInitialized
	}
	if len(s.script) == 0 {
		return nil, nil
	}
	next := s.script[0]
	s.script = s.script[1:]
	return next.candidates, next.err
}

// PoseUpdates returns the scripted pose feed.
func (s *Scripted) PoseUpdates() <-chan ar.PoseUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feed
}

// SetLogger accepts a session logger (ar.LoggerSetter).
func (s *Scripted) SetLogger(l *slog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = l
}

func (s *Scripted) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return ar.Logger()
}

func init() {
	// Registered for by-name selection; never part of Default priority.
	Register(BackendScripted, func() ar.TrackingBackend { return NewScripted() })
}
