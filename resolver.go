package ar

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"
)

// Resolver turns screen taps into anchored offsets. It queries one
// tracking backend, ranks the raw candidates with PickHit, binds the
// winner to an anchor in the registry, and expresses the exact hit
// point as an offset from that anchor.
//
// Resolver has no state of its own beyond its collaborators; a Session
// owns one, but a resolver can also be assembled directly for tests.
type Resolver struct {
	backend  TrackingBackend
	registry *Registry
	calib    Calibration
}

// NewResolver creates a resolver over the given backend and registry.
func NewResolver(b TrackingBackend, r *Registry, calib Calibration) *Resolver {
	return &Resolver{backend: b, registry: r, calib: calib}
}

// SetCalibration swaps the resolver's calibration. Called from the
// update goroutine, typically out of a CalibrationWatcher callback.
func (rv *Resolver) SetCalibration(c Calibration) { rv.calib = c }

// ResolveHit issues a hit test at the normalized screen point (x, y)
// (origin top-left, both in [0,1]) and resolves the best intersection
// into an AnchorOffset.
//
// Candidate poses reported by the backend are expressed in active; they
// are re-expressed in active's tracker space before the anchor is
// created or matched, so anchors never hold per-frame coordinates.
//
// Returns (nil, nil) when the backend legitimately sees nothing there.
// A failed backend query returns a *BackendQueryError; a space mismatch
// returns ErrDisjointSpaces. Callers can always distinguish "nothing
// there" from "could not ask".
//
// Must be called from the update goroutine: a successful resolution may
// create an anchor. For queries decoupled from the frame loop, see
// Session.RequestHit.
func (rv *Resolver) ResolveHit(ctx context.Context, x, y float64, active *Space) (*AnchorOffset, error) {
	candidates, err := rv.backend.HitTest(ctx, x, y)
	if err != nil {
		return nil, &BackendQueryError{Backend: rv.backend.Name(), Err: err}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	best := PickHit(candidates)
	if best == nil {
		return nil, nil
	}
	Logger().Debug("ar: hit picked",
		"kind", best.Kind.String(),
		"distance", best.Distance,
		"surface", best.SurfaceID,
		"candidates", len(candidates))

	return rv.bind(best, active)
}

// bind matches the winning candidate against the registry and computes
// its offset. Split out so Session can complete asynchronous queries on
// the update turn.
func (rv *Resolver) bind(best *HitCandidate, active *Space) (*AnchorOffset, error) {
	tracker := active.Tracker()

	anchorPose, err := TransformPose(rv.correct(best.AnchorPose), active, tracker)
	if err != nil {
		return nil, err
	}
	worldPose, err := TransformPose(rv.correct(best.WorldPose), active, tracker)
	if err != nil {
		return nil, err
	}

	// Backends that expose stable surface identity keep one anchor per
	// surface; otherwise every resolution mints a fresh id.
	key := best.SurfaceID
	if key == "" {
		key = rv.registry.newID()
	}

	anchor, ok := rv.registry.Get(key)
	if !ok {
		anchor = rv.registry.Create(anchorPose, key)
	}

	// The offset is computed against the anchor's current pose, not the
	// raw candidate pose: for a re-matched surface the backend may have
	// refined the anchor since, and the invariant that resolving the
	// offset reproduces the hit's world pose must hold against the
	// registry's state.
	return &AnchorOffset{
		AnchorID: anchor.ID(),
		Pose:     OffsetFrom(anchor.Pose(), worldPose),
	}, nil
}

// correct applies the calibration height shift to a raw backend pose.
// Applied uniformly to both candidate poses, so the shift cancels out
// of the offset and only moves the anchor.
func (rv *Resolver) correct(p Pose) Pose {
	return p.Translated(mgl64.Vec3{0, rv.calib.EyeHeightOffset, 0})
}
