package geom

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// MaxRayLength bounds the segment handed to the box tracer.
const MaxRayLength = 1000.0

// Cuboid is a box centered on its pose origin.
type Cuboid struct {
	HalfExtents mgl64.Vec3
}

func NewCuboid(hx, hy, hz float64) Cuboid {
	return Cuboid{HalfExtents: mgl64.Vec3{hx, hy, hz}}
}

func (c Cuboid) bbox() cube.BBox {
	h := vec32(c.HalfExtents)
	return cube.Box(-h[0], -h[1], -h[2], h[0], h[1], h[2])
}

func (c Cuboid) CastRay(pose Pose, ray Ray, solid bool) (RayHit, bool) {
	local := ray.Transform(pose.Inverse())
	if solid && c.containsLocal(local.Origin) {
		return RayHit{TOI: 0, Normal: ray.Dir.Mul(-1)}, true
	}

	start := vec32(local.Origin)
	end := vec32(local.At(MaxRayLength))
	res, ok := trace.BBoxIntercept(c.bbox(), start, end)
	if !ok {
		return RayHit{}, false
	}
	hit := res.Position()
	return RayHit{
		TOI:    float64(hit.Sub(start).Len()),
		Normal: pose.TransformVector(c.faceNormal(hit)),
	}, true
}

func (c Cuboid) ContainsPoint(pose Pose, point mgl64.Vec3) bool {
	return c.containsLocal(pose.Inverse().TransformPoint(point))
}

func (c Cuboid) containsLocal(p mgl64.Vec3) bool {
	bb := c.bbox()
	min, max := bb.Min(), bb.Max()
	q := vec32(p)
	for i := 0; i < 3; i++ {
		if q[i] < min[i] || q[i] > max[i] {
			return false
		}
	}
	return true
}

// faceNormal picks the axis on which the local hit point sits closest to the face.
func (c Cuboid) faceNormal(hit mgl32.Vec3) mgl64.Vec3 {
	h := vec32(c.HalfExtents)
	axis, best := 0, float32(-1)
	for i := 0; i < 3; i++ {
		if h[i] == 0 {
			continue
		}
		if r := math32.Abs(hit[i]) / h[i]; r > best {
			axis, best = i, r
		}
	}
	var n mgl64.Vec3
	n[axis] = float64(math32.Copysign(1, hit[axis]))
	return n
}

func (c Cuboid) Support(pose Pose, dir mgl64.Vec3) mgl64.Vec3 {
	local := pose.Inverse().TransformVector(dir)
	var p mgl64.Vec3
	for i := 0; i < 3; i++ {
		if local[i] < 0 {
			p[i] = -c.HalfExtents[i]
		} else {
			p[i] = c.HalfExtents[i]
		}
	}
	return pose.TransformPoint(p)
}

func (c Cuboid) Inertia(mass float64) mgl64.Mat3 {
	x, y, z := 2*c.HalfExtents[0], 2*c.HalfExtents[1], 2*c.HalfExtents[2]
	k := mass / 12
	return mgl64.Diag3(mgl64.Vec3{k * (y*y + z*z), k * (x*x + z*z), k * (x*x + y*y)})
}

func vec32(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}
