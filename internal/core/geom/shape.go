package geom

import "github.com/go-gl/mathgl/mgl64"

// Ray is a half line; Dir is expected to be unit length so that TOI is a distance.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

func (r Ray) At(toi float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(toi))
}

func (r Ray) Transform(p Pose) Ray {
	return Ray{Origin: p.TransformPoint(r.Origin), Dir: p.TransformVector(r.Dir)}
}

type RayHit struct {
	TOI    float64
	Normal mgl64.Vec3
}

// Shape is the intersection primitive consumed by the interaction layer.
// A solid shape reports a hit at TOI 0 when the ray starts inside it.
type Shape interface {
	CastRay(pose Pose, ray Ray, solid bool) (RayHit, bool)
	ContainsPoint(pose Pose, point mgl64.Vec3) bool
}

// Supporter is implemented by convex shapes; Support returns the world-space
// point of the shape farthest along dir.
type Supporter interface {
	Support(pose Pose, dir mgl64.Vec3) mgl64.Vec3
}

// MassProperties is implemented by shapes with a closed-form inertia tensor
// about their own origin, expressed in shape-local axes.
type MassProperties interface {
	Inertia(mass float64) mgl64.Mat3
}
