// Package geom holds the rigid-transform math shared by the interaction and
// physics layers, and the shapes controllers can point at or touch.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Forward is the local pointing direction of a tracked controller.
var Forward = mgl64.Vec3{0, 0, -1}

// Pose is a rigid transform: rotate, then translate.
type Pose struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
}

func Identity() Pose {
	return Pose{Rotation: mgl64.QuatIdent()}
}

func NewPose(translation mgl64.Vec3, rotation mgl64.Quat) Pose {
	return Pose{Translation: translation, Rotation: rotation.Normalize()}
}

func Translation(x, y, z float64) Pose {
	return Pose{Translation: mgl64.Vec3{x, y, z}, Rotation: mgl64.QuatIdent()}
}

// Mul composes p with q so that the result applies q first, then p.
func (p Pose) Mul(q Pose) Pose {
	return Pose{
		Translation: p.Translation.Add(p.Rotation.Rotate(q.Translation)),
		Rotation:    p.Rotation.Mul(q.Rotation).Normalize(),
	}
}

func (p Pose) Inverse() Pose {
	inv := p.Rotation.Inverse()
	return Pose{
		Translation: inv.Rotate(p.Translation).Mul(-1),
		Rotation:    inv,
	}
}

func (p Pose) TransformPoint(v mgl64.Vec3) mgl64.Vec3 {
	return p.Translation.Add(p.Rotation.Rotate(v))
}

func (p Pose) TransformVector(v mgl64.Vec3) mgl64.Vec3 {
	return p.Rotation.Rotate(v)
}

func (p Pose) ApproxEqual(q Pose, eps float64) bool {
	if !p.Translation.ApproxEqualThreshold(q.Translation, eps) {
		return false
	}
	// q and -q encode the same rotation.
	return math.Abs(math.Abs(p.Rotation.Dot(q.Rotation))-1) <= eps
}

// Interpolate blends translation linearly and rotation along the shortest arc.
func Interpolate(from, to Pose, t float64) Pose {
	return Pose{
		Translation: from.Translation.Mul(1 - t).Add(to.Translation.Mul(t)),
		Rotation:    Slerp(from.Rotation, to.Rotation, t),
	}
}

func Slerp(from, to mgl64.Quat, t float64) mgl64.Quat {
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	return mgl64.QuatSlerp(from, to, t).Normalize()
}

// ScaledAxis returns the rotation vector of q: unit axis times angle in radians.
func ScaledAxis(q mgl64.Quat) mgl64.Vec3 {
	q = q.Normalize()
	if q.W < 0 {
		q = q.Scale(-1)
	}
	sinHalf := q.V.Len()
	if sinHalf < 1e-12 {
		return q.V.Mul(2)
	}
	angle := 2 * math.Atan2(sinHalf, q.W)
	return q.V.Mul(angle / sinHalf)
}

// FromScaledAxis is the inverse of ScaledAxis.
func FromScaledAxis(v mgl64.Vec3) mgl64.Quat {
	angle := v.Len()
	if angle < 1e-12 {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(angle, v.Mul(1/angle))
}
