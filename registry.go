package ar

import (
	"sync"

	"github.com/google/uuid"
)

// Registry owns the mapping from anchor id to Anchor. It is the sole
// owner and sole mutator of all Anchor instances; every other component
// holds only the id.
//
// All methods except EnqueueUpdate must be called from the host's
// single update/render goroutine. A host integrating a multi-threaded
// backend marshals its callbacks through EnqueueUpdate, which is safe
// from any goroutine, and drains them with ApplyUpdates on the update
// turn.
type Registry struct {
	anchors map[string]*Anchor
	newID   func() string

	// frame counts update turns for stale detection.
	frame       uint64
	staleBudget uint64

	// queue buffers pose updates arriving from backend goroutines.
	queueMu sync.Mutex
	queue   []PoseUpdate
}

// RegistryOption configures a Registry during creation.
type RegistryOption func(*Registry)

// WithIDSource sets the generator used for fresh anchor ids.
// The default generates UUIDv4 strings. Tests inject deterministic
// sequences this way.
func WithIDSource(fn func() string) RegistryOption {
	return func(r *Registry) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// WithStaleBudget sets how many update turns may pass without a backend
// confirmation before a tracked anchor is marked stale by Tick.
// The default is DefaultCalibration().StaleFrameBudget.
func WithStaleBudget(frames uint64) RegistryOption {
	return func(r *Registry) {
		r.staleBudget = frames
	}
}

// NewRegistry creates an empty anchor registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		anchors:     make(map[string]*Anchor),
		newID:       uuid.NewString,
		staleBudget: DefaultCalibration().StaleFrameBudget,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create allocates a new anchor at the given tracker-space pose and
// inserts it into the registry in the pending state. If id is supplied
// and an anchor with that id already exists, the existing anchor is
// returned unchanged, making Create usable as find-or-create.
// With no id, a fresh unique id is generated.
func (r *Registry) Create(pose Pose, id ...string) *Anchor {
	key := ""
	if len(id) > 0 {
		key = id[0]
	}
	if key == "" {
		key = r.newID()
	} else if a, ok := r.anchors[key]; ok {
		return a
	}
	a := &Anchor{
		id:        key,
		pose:      pose,
		state:     AnchorPending,
		createdAt: r.frame,
		lastSeen:  r.frame,
	}
	r.anchors[key] = a
	Logger().Debug("ar: anchor created", "id", key, "state", a.state.String())
	return a
}

// Get looks up an anchor by id. Pure lookup, no side effects.
func (r *Registry) Get(id string) (*Anchor, bool) {
	a, ok := r.anchors[id]
	return a, ok
}

// Remove deletes the anchor with the given id. Idempotent: removing an
// absent id is a no-op. The anchor transitions to its terminal removed
// state so that stale references held by callers observe it.
func (r *Registry) Remove(id string) {
	a, ok := r.anchors[id]
	if !ok {
		return
	}
	a.remove()
	delete(r.anchors, id)
	Logger().Debug("ar: anchor removed", "id", id)
}

// UpdatePose overwrites the anchor's tracker-space pose with a fresh
// backend report and confirms its tracking. An unknown id is logged and
// ignored: backend updates racing with local removal are expected, not
// a corruption signal.
func (r *Registry) UpdatePose(id string, pose Pose) {
	a, ok := r.anchors[id]
	if !ok {
		Logger().Warn("ar: pose update for unknown anchor", "id", id)
		return
	}
	a.confirm(pose, r.frame)
}

// EnqueueUpdate buffers a pose update for the next ApplyUpdates call.
// Safe to call from any goroutine; this is the entry point for
// asynchronous backend pose feeds.
func (r *Registry) EnqueueUpdate(u PoseUpdate) {
	r.queueMu.Lock()
	r.queue = append(r.queue, u)
	r.queueMu.Unlock()
}

// ApplyUpdates drains the queued pose updates in arrival order.
// Last-write-wins per id falls out of the ordering. Must be called on
// the update goroutine.
func (r *Registry) ApplyUpdates() {
	r.queueMu.Lock()
	pending := r.queue
	r.queue = nil
	r.queueMu.Unlock()

	for _, u := range pending {
		r.UpdatePose(u.AnchorID, u.Pose)
	}
}

// Tick advances the registry's frame counter and ages tracked anchors:
// any anchor not confirmed within the stale budget becomes stale.
// Call once per update turn, after ApplyUpdates.
func (r *Registry) Tick() {
	r.frame++
	for _, a := range r.anchors {
		a.age(r.frame, r.staleBudget)
	}
}

// Len returns the number of registered anchors.
func (r *Registry) Len() int { return len(r.anchors) }

// Anchors returns a snapshot slice of all registered anchors, in
// unspecified order.
func (r *Registry) Anchors() []*Anchor {
	out := make([]*Anchor, 0, len(r.anchors))
	for _, a := range r.anchors {
		out = append(out, a)
	}
	return out
}
