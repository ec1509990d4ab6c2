package ar

// AnchorOffset locates a point relative to an anchor instead of in
// absolute tracker space: content placed by an AnchorOffset follows the
// anchor as the backend refines its pose.
//
// The offset convention matches how it is produced by the resolver:
// Pose.Position is the tracker-space displacement from the anchor to
// the target and Pose.Rotation is the target's rotation with the
// anchor's rotation factored out. Resolve recombines them; for any
// anchor pose the round trip Resolve(anchor) over an offset built from
// a world pose reproduces that world pose.
type AnchorOffset struct {
	// AnchorID references the anchor in its owning Registry.
	AnchorID string

	// Pose is the transform relative to the anchor's frame.
	Pose Pose
}

// OffsetFrom builds the offset that carries anchor to world:
// translation is the componentwise tracker-space difference of the
// positions, rotation is the world rotation composed with the inverse
// of the anchor rotation.
func OffsetFrom(anchor, world Pose) Pose {
	return Pose{
		Position: world.Position.Sub(anchor.Position),
		Rotation: world.Rotation.Mul(anchor.Rotation.Inverse()).Normalize(),
	}
}

// Resolve returns the absolute tracker-space pose of the offset target
// given the current pose of its anchor.
func (o AnchorOffset) Resolve(anchor Pose) Pose {
	return Pose{
		Position: anchor.Position.Add(o.Pose.Position),
		Rotation: o.Pose.Rotation.Mul(anchor.Rotation).Normalize(),
	}
}

// ResolveIn resolves the offset against the anchor's current pose in
// the registry. Reports false if the anchor no longer exists.
func (o AnchorOffset) ResolveIn(r *Registry) (Pose, bool) {
	a, ok := r.Get(o.AnchorID)
	if !ok {
		return Pose{}, false
	}
	return o.Resolve(a.Pose()), true
}
