package ar

// TrackingState describes where an anchor is in its backend
// synchronization lifecycle.
type TrackingState int

const (
	// AnchorPending: created locally, not yet confirmed by the backend.
	AnchorPending TrackingState = iota

	// AnchorTracked: the backend is actively reporting pose updates.
	AnchorTracked

	// AnchorStale: the backend stopped reporting within its frame
	// budget, e.g. the surface was lost. May return to AnchorTracked if
	// reporting resumes.
	AnchorStale

	// AnchorRemoved: explicitly removed. Terminal; a removed anchor is
	// never resurrected, a new id must be created if tracking resumes.
	AnchorRemoved
)

// String returns a short name for the state.
func (s TrackingState) String() string {
	switch s {
	case AnchorPending:
		return "pending"
	case AnchorTracked:
		return "tracked"
	case AnchorStale:
		return "stale"
	case AnchorRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Anchor is a persistent real-world reference point that virtual
// content can be attached to. An anchor binds a unique id to a pose
// expressed in tracker space, never in a transient per-frame space, so
// backend updates can overwrite the pose directly.
//
// Anchors are owned by a Registry; every other component refers to an
// anchor by its id only.
type Anchor struct {
	id        string
	pose      Pose // always tracker space
	state     TrackingState
	lastSeen  uint64 // registry frame of the last backend confirmation
	createdAt uint64
}

// ID returns the anchor's unique id.
func (a *Anchor) ID() string { return a.id }

// Pose returns the anchor's pose in tracker space.
func (a *Anchor) Pose() Pose { return a.pose }

// State returns the anchor's tracking state.
func (a *Anchor) State() TrackingState { return a.state }

// confirm records a backend pose report at the given registry frame.
// Pending and stale anchors become tracked; removed anchors are
// untouchable.
func (a *Anchor) confirm(pose Pose, frame uint64) {
	if a.state == AnchorRemoved {
		return
	}
	a.pose = pose
	a.state = AnchorTracked
	a.lastSeen = frame
}

// age marks a tracked anchor stale when it has not been confirmed
// within budget frames. Pending anchors are left alone: they have never
// been confirmed, so there is nothing to lose.
func (a *Anchor) age(frame, budget uint64) {
	if a.state != AnchorTracked {
		return
	}
	if frame-a.lastSeen > budget {
		a.state = AnchorStale
	}
}

// remove transitions the anchor to its terminal state.
func (a *Anchor) remove() {
	a.state = AnchorRemoved
}
