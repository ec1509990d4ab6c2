package backend

import (
	"context"

	"github.com/gogpu/ar"
)

// Null is the tracking backend that tracks nothing: every hit test
// legitimately sees nothing there, and the pose feed stays silent until
// closed. It keeps session code paths runnable on machines without any
// tracking system.
type Null struct {
	feed        chan ar.PoseUpdate
	initialized bool
}

// NewNull creates a null backend.
func NewNull() *Null {
	return &Null{}
}

// Name returns "null".
func (n *Null) Name() string { return BackendNull }

// Init prepares the (empty) pose feed.
func (n *Null) Init() error {
	n.feed = make(chan ar.PoseUpdate)
	n.initialized = true
	return nil
}

// Close closes the pose feed.
func (n *Null) Close() {
	if !n.initialized {
		return
	}
	n.initialized = false
	close(n.feed)
}

// HitTest always reports no candidates.
func (n *Null) HitTest(ctx context.Context, x, y float64) ([]ar.HitCandidate, error) {
	if !n.initialized {
		return nil, ErrNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}

// PoseUpdates returns the feed; it never carries an event.
func (n *Null) PoseUpdates() <-chan ar.PoseUpdate { return n.feed }

func init() {
	Register(BackendNull, func() ar.TrackingBackend { return NewNull() })
}
