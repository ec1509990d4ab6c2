package replay

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/gogpu/ar"
)

// Recorder wraps a live tracking backend and captures everything that
// flows through it. It satisfies ar.TrackingBackend, so it drops into a
// session transparently.
type Recorder struct {
	inner ar.TrackingBackend

	mu      sync.Mutex
	session Session

	feed     chan ar.PoseUpdate
	feedDone chan struct{}
}

// NewRecorder creates a recorder over the given backend.
func NewRecorder(inner ar.TrackingBackend) *Recorder {
	return &Recorder{inner: inner}
}

// Name returns the wrapped backend's name suffixed with "+record".
func (r *Recorder) Name() string { return r.inner.Name() + "+record" }

// Init initializes the wrapped backend and starts teeing its pose feed.
func (r *Recorder) Init() error {
	if err := r.inner.Init(); err != nil {
		return err
	}
	r.session.Backend = r.inner.Name()
	r.feed = make(chan ar.PoseUpdate, 64)
	r.feedDone = make(chan struct{})

	inner := r.inner.PoseUpdates()
	go func() {
		defer close(r.feedDone)
		defer close(r.feed)
		for u := range inner {
			r.mu.Lock()
			r.session.Updates = append(r.session.Updates, Update{
				AnchorID: u.AnchorID,
				Pose:     poseDTO(u.Pose),
			})
			r.mu.Unlock()
			// Never block the tee on a slow consumer: the update is
			// already captured, the live feed just loses it, and Close
			// stays reachable.
			select {
			case r.feed <- u:
			default:
				ar.Logger().Warn("replay: recorder feed full, update dropped", "anchor", u.AnchorID)
			}
		}
	}()
	return nil
}

// Close closes the wrapped backend and waits for the feed tee to drain.
func (r *Recorder) Close() {
	r.inner.Close()
	if r.feedDone != nil {
		<-r.feedDone
	}
}

// HitTest forwards the query and records the exchange, including
// failures.
func (r *Recorder) HitTest(ctx context.Context, x, y float64) ([]ar.HitCandidate, error) {
	candidates, err := r.inner.HitTest(ctx, x, y)

	q := Query{X: x, Y: y}
	for _, c := range candidates {
		q.Candidates = append(q.Candidates, candidateDTO(c))
	}
	if err != nil {
		q.Error = err.Error()
	}
	r.mu.Lock()
	r.session.Queries = append(r.session.Queries, q)
	r.mu.Unlock()

	return candidates, err
}

// PoseUpdates returns the teed pose feed.
func (r *Recorder) PoseUpdates() <-chan ar.PoseUpdate { return r.feed }

// Session returns a copy of the capture so far.
func (r *Recorder) Session() Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.session
	s.Queries = append([]Query(nil), r.session.Queries...)
	s.Updates = append([]Update(nil), r.session.Updates...)
	return s
}

// WriteFile writes the capture so far to path as indented JSON.
func (r *Recorder) WriteFile(path string) error {
	s := r.Session()
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("replay: write %s: %w", path, err)
	}
	return nil
}
