package ar

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Pose represents a rigid transform in 3D space: a position and a unit
// quaternion orientation. Rotation state is kept in quaternion form
// rather than as a matrix so that long chains of small-angle
// compositions can be renormalized without drift.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// IdentityPose returns the identity transform.
func IdentityPose() Pose {
	return Pose{Rotation: mgl64.QuatIdent()}
}

// NewPose creates a pose from a position and an orientation.
// The orientation is normalized.
func NewPose(position mgl64.Vec3, rotation mgl64.Quat) Pose {
	return Pose{Position: position, Rotation: rotation.Normalize()}
}

// Mul composes two poses: the result applies q first, then p.
// Equivalent to multiplying their homogeneous matrices p * q.
func (p Pose) Mul(q Pose) Pose {
	return Pose{
		Position: p.Position.Add(p.Rotation.Rotate(q.Position)),
		Rotation: p.Rotation.Mul(q.Rotation).Normalize(),
	}
}

// Inverse returns the pose that undoes p.
func (p Pose) Inverse() Pose {
	inv := p.Rotation.Inverse().Normalize()
	return Pose{
		Position: inv.Rotate(p.Position.Mul(-1)),
		Rotation: inv,
	}
}

// TransformPoint applies the pose to a point.
func (p Pose) TransformPoint(v mgl64.Vec3) mgl64.Vec3 {
	return p.Position.Add(p.Rotation.Rotate(v))
}

// Mat4 returns the pose as a homogeneous 4x4 column-major matrix.
func (p Pose) Mat4() mgl64.Mat4 {
	return mgl64.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z()).
		Mul4(p.Rotation.Mat4())
}

// PoseFromMat4 extracts a pose from a rigid homogeneous matrix.
// Scale and shear components are not supported; the rotation part is
// assumed orthonormal.
func PoseFromMat4(m mgl64.Mat4) Pose {
	return Pose{
		Position: mgl64.Vec3{m.At(0, 3), m.At(1, 3), m.At(2, 3)},
		Rotation: mgl64.Mat4ToQuat(m).Normalize(),
	}
}

// Translated returns a copy of the pose with v added to its position.
func (p Pose) Translated(v mgl64.Vec3) Pose {
	return Pose{Position: p.Position.Add(v), Rotation: p.Rotation}
}

// vecApproxEqual compares vectors componentwise with an absolute
// tolerance. mgl64's ApproxEqualThreshold switches to a squared epsilon
// when a component is exactly zero, which rejects ordinary float
// residue (~1e-16) against an expected 0; plain absolute differences
// keep the tolerance meaning the same everywhere.
func vecApproxEqual(a, b mgl64.Vec3, epsilon float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(a[i]-b[i]) > epsilon {
			return false
		}
	}
	return true
}

// ApproxEqual reports whether two poses are equal within epsilon:
// every position component differs by at most epsilon, absolutely.
// Orientations are compared up to sign, since q and -q encode the same
// rotation.
func (p Pose) ApproxEqual(q Pose, epsilon float64) bool {
	if !vecApproxEqual(p.Position, q.Position, epsilon) {
		return false
	}
	return math.Abs(math.Abs(p.Rotation.Dot(q.Rotation))-1) <= epsilon
}
