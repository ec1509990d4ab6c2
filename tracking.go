package ar

import "context"

// PoseUpdate is one event from a backend's asynchronous pose feed: the
// backend re-observed the surface behind an anchor and reports its
// fresh tracker-space pose. Consumption is idempotent and
// order-insensitive across distinct ids; per id, last write wins.
type PoseUpdate struct {
	AnchorID string
	Pose     Pose
}

// TrackingBackend is the capability interface every tracking system
// implements: a plane-detection AR session, a feature-point SLAM
// pipeline, or a null backend that never sees anything. The resolver
// and picker are backend-agnostic; concrete implementations live under
// backend/ and register with its plug-in registry.
type TrackingBackend interface {
	// Name returns the backend identifier (e.g. "null", "scripted").
	Name() string

	// Init initializes the backend. Must be called before any queries.
	Init() error

	// Close releases all backend resources and closes the pose-update
	// feed. The backend must not be used after Close.
	Close()

	// HitTest intersects a screen-space ray with the backend's tracked
	// geometry. x and y are normalized to [0,1], origin top-left.
	// An empty result with a nil error means "nothing there"; a non-nil
	// error means the query itself could not be carried out.
	//
	// No timeout is imposed here: a backend that never responds leaves
	// the call blocked until ctx is done. Callers apply their own
	// timeout policy through the context.
	HitTest(ctx context.Context, x, y float64) ([]HitCandidate, error)

	// PoseUpdates returns the backend's asynchronous pose feed. The
	// channel is closed when the backend is closed. Receivers must not
	// call into a Registry directly from another goroutine; enqueue
	// instead (Session.Start does this).
	PoseUpdates() <-chan PoseUpdate
}
