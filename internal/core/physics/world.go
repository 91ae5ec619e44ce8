package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/vrscene/internal/core/geom"
)

var (
	DefaultGravity = mgl64.Vec3{0, -5, 0}
	up             = mgl64.Vec3{0, 1, 0}
)

type WorldConfig struct {
	Gravity mgl64.Vec3
	// Ground is the height of the floor plane; bodies whose shape can report
	// a support point rest on it.
	Ground float64
	// NoGround disables floor contact entirely.
	NoGround bool
}

func DefaultWorldConfig() WorldConfig {
	return WorldConfig{Gravity: DefaultGravity}
}

// World is a small reference engine: gravity, semi-implicit Euler, damping
// and a single ground plane with restitution and friction.
type World struct {
	cfg    WorldConfig
	bodies []Body
}

var _ Engine = (*World)(nil)

func NewWorld(cfg WorldConfig) *World {
	return &World{cfg: cfg}
}

func (w *World) AddBody(body Body) int {
	w.bodies = append(w.bodies, body)
	return len(w.bodies) - 1
}

func (w *World) Body(index int) Body {
	return w.bodies[index]
}

func (w *World) Len() int {
	return len(w.bodies)
}

func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	for i := range w.bodies {
		b := &w.bodies[i]
		if !b.Dynamic() {
			continue
		}
		integrate(b, w.cfg.Gravity, dt)
		if !w.cfg.NoGround {
			w.contactGround(b)
		}
	}
}

func integrate(b *Body, gravity mgl64.Vec3, dt float64) {
	b.LinVel = b.LinVel.Add(gravity.Mul(dt)).Mul(1 / (1 + dt*b.LinearDamping))
	b.AngVel = b.AngVel.Mul(1 / (1 + dt*b.AngularDamping))

	b.Pose.Translation = b.Pose.Translation.Add(b.LinVel.Mul(dt))
	b.Pose.Rotation = geom.FromScaledAxis(b.AngVel.Mul(dt)).Mul(b.Pose.Rotation).Normalize()
}

func (w *World) contactGround(b *Body) {
	s, ok := b.Shape.(geom.Supporter)
	if !ok {
		return
	}
	lowest := s.Support(b.Pose, up.Mul(-1))
	depth := w.cfg.Ground - lowest.Y()
	if depth <= 0 {
		return
	}
	b.Pose.Translation = b.Pose.Translation.Add(up.Mul(depth))

	vn := b.LinVel.Dot(up)
	if vn >= 0 {
		return
	}
	tangent := b.LinVel.Sub(up.Mul(vn))
	bounce := -vn * b.Restitution
	// Coulomb friction bounded by the normal impulse.
	if tl := tangent.Len(); tl > 0 {
		drop := math.Min(tl, b.Friction*-vn)
		tangent = tangent.Mul((tl - drop) / tl)
	}
	b.LinVel = tangent.Add(up.Mul(bounce))
	b.AngVel = b.AngVel.Mul(math.Max(0, 1-b.Friction*0.1))
}
