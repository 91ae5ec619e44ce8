package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Ball struct {
	Radius float64
}

func (b Ball) CastRay(pose Pose, ray Ray, solid bool) (RayHit, bool) {
	oc := ray.Origin.Sub(pose.Translation)
	bq := oc.Dot(ray.Dir)
	c := oc.Dot(oc) - b.Radius*b.Radius
	if c <= 0 && solid {
		return RayHit{TOI: 0, Normal: ray.Dir.Mul(-1)}, true
	}
	disc := bq*bq - c
	if disc < 0 {
		return RayHit{}, false
	}
	sq := math.Sqrt(disc)
	toi := -bq - sq
	if toi < 0 {
		// Origin inside a hollow ball: report the exit point.
		toi = -bq + sq
	}
	if toi < 0 {
		return RayHit{}, false
	}
	return RayHit{TOI: toi, Normal: ray.At(toi).Sub(pose.Translation).Normalize()}, true
}

func (b Ball) ContainsPoint(pose Pose, point mgl64.Vec3) bool {
	return point.Sub(pose.Translation).Len() <= b.Radius
}

func (b Ball) Support(pose Pose, dir mgl64.Vec3) mgl64.Vec3 {
	if dir.Len() == 0 {
		return pose.Translation
	}
	return pose.Translation.Add(dir.Normalize().Mul(b.Radius))
}

func (b Ball) Inertia(mass float64) mgl64.Mat3 {
	k := 0.4 * mass * b.Radius * b.Radius
	return mgl64.Diag3(mgl64.Vec3{k, k, k})
}
