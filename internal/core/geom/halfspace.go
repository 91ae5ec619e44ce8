package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// HalfSpace is everything below the plane through the pose origin whose
// local normal is Normal. Used for floors and walls.
type HalfSpace struct {
	Normal mgl64.Vec3
}

func (h HalfSpace) CastRay(pose Pose, ray Ray, solid bool) (RayHit, bool) {
	n := pose.TransformVector(h.Normal).Normalize()
	dist := ray.Origin.Sub(pose.Translation).Dot(n)
	if dist <= 0 {
		if solid {
			return RayHit{TOI: 0, Normal: n}, true
		}
		return RayHit{}, false
	}
	denom := ray.Dir.Dot(n)
	if denom >= 0 || math.Abs(denom) < 1e-12 {
		return RayHit{}, false
	}
	return RayHit{TOI: -dist / denom, Normal: n}, true
}

func (h HalfSpace) ContainsPoint(pose Pose, point mgl64.Vec3) bool {
	n := pose.TransformVector(h.Normal)
	return point.Sub(pose.Translation).Dot(n) <= 0
}
