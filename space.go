package ar

// Space is a named coordinate reference frame. Spaces form a tree: each
// non-root space stores its pose relative to a parent, and every space
// is transitively anchored to exactly one root, the tracker space of its
// session. Transforming a pose between two spaces composes it through
// their common root.
//
// A Space holds a plain reference to its parent, not ownership: removing
// a child never affects the parent, and the tree is never garbage
// collected implicitly.
//
// Spaces are not safe for concurrent mutation; like Registry, they are
// owned by the host's update goroutine.
type Space struct {
	name   string
	parent *Space
	pose   Pose // relative to parent; identity for roots
}

// NewRootSpace creates a root space, typically the tracker space of a
// session. Its pose is the identity and it has no parent.
func NewRootSpace(name string) *Space {
	return &Space{name: name, pose: IdentityPose()}
}

// NewChild creates a space whose pose is expressed relative to s.
func (s *Space) NewChild(name string, pose Pose) *Space {
	return &Space{name: name, parent: s, pose: pose}
}

// Name returns the space's name.
func (s *Space) Name() string { return s.name }

// Parent returns the parent space, or nil for a root.
func (s *Space) Parent() *Space { return s.parent }

// Pose returns the space's pose relative to its parent.
func (s *Space) Pose() Pose { return s.pose }

// SetPose updates the space's pose relative to its parent. Per-frame
// spaces (a camera space, for example) are repositioned this way on
// every tracking update.
func (s *Space) SetPose(p Pose) { s.pose = p }

// Tracker returns the root of the space's tree: the tracker space every
// anchor pose is expressed in.
func (s *Space) Tracker() *Space {
	for s.parent != nil {
		s = s.parent
	}
	return s
}

// poseInRoot returns the transform that maps coordinates in s to the
// root of its tree, composed through quaternion math at each hop.
func (s *Space) poseInRoot() Pose {
	p := IdentityPose()
	for cur := s; cur.parent != nil; cur = cur.parent {
		p = cur.pose.Mul(p)
	}
	return p
}

// TransformPose re-expresses a pose given in the from space into the to
// space. The pose is composed up the from chain to the shared root and
// back down into to. Returns ErrDisjointSpaces if the two spaces do not
// share a root.
func TransformPose(p Pose, from, to *Space) (Pose, error) {
	if from == to {
		return p, nil
	}
	if from.Tracker() != to.Tracker() {
		return Pose{}, ErrDisjointSpaces
	}
	inRoot := from.poseInRoot().Mul(p)
	return to.poseInRoot().Inverse().Mul(inRoot), nil
}
