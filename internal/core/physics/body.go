// Package physics wraps a rigid-body engine behind a per-frame step
// coordinator. Bodies are submitted during the frame, the world is stepped
// exactly once, and handles read the post-step bodies afterwards.
package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/vrscene/internal/core/geom"
)

// Body is a rigid body as handed to and read back from an Engine.
type Body struct {
	Name   string
	Shape  geom.Shape
	Pose   geom.Pose
	LinVel mgl64.Vec3
	AngVel mgl64.Vec3
	Mass   float64
	// Static bodies are never integrated.
	Static bool

	Restitution    float64
	Friction       float64
	LinearDamping  float64
	AngularDamping float64
}

// NewBody returns a dynamic body at rest with default material.
func NewBody(name string, shape geom.Shape, pose geom.Pose, mass float64) Body {
	return Body{
		Name:        name,
		Shape:       shape,
		Pose:        pose,
		Mass:        mass,
		Restitution: 0.3,
		Friction:    0.5,
	}
}

func (b Body) Dynamic() bool {
	return !b.Static && b.Mass > 0
}

// Inertia is the world-space inertia tensor about the body's center, or
// false when the shape has no closed form.
func (b Body) Inertia() (mgl64.Mat3, bool) {
	mp, ok := b.Shape.(geom.MassProperties)
	if !ok || !b.Dynamic() {
		return mgl64.Mat3{}, false
	}
	r := b.Pose.Rotation.Mat4().Mat3()
	return r.Mul3(mp.Inertia(b.Mass)).Mul3(r.Transpose()), true
}

// Engine is the rigid-body simulation the coordinator drives.
type Engine interface {
	AddBody(body Body) int
	Step(dt float64)
	Body(index int) Body
	Len() int
}
