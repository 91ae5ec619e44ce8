package manipulate

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/vrscene/internal/core/controller"
	"github.com/zeusync/vrscene/internal/core/geom"
	"github.com/zeusync/vrscene/internal/core/interact"
)

type GrabKind uint8

const (
	GrabFree GrabKind = iota
	GrabPointed
	GrabHeld
)

// GrabState is the state of a single-controller grab. Offset and the
// velocities are only set while held.
type GrabState struct {
	Kind   GrabKind
	Offset geom.Pose
	LinVel mgl64.Vec3
	AngVel mgl64.Vec3
}

func (s GrabState) Held() bool {
	return s.Kind == GrabHeld
}

// Grabbable is an edge-triggered grab bound to one controller: the trigger
// must cross the threshold while touching to start a hold, and the hold
// lasts until the trigger is released.
type Grabbable struct {
	state     GrabState
	threshold float64
}

func NewGrabbable(threshold float64) *Grabbable {
	return &Grabbable{threshold: threshold}
}

func (g *Grabbable) State() GrabState {
	return g.state
}

type GrabTicket struct {
	index   controller.Index
	pose    geom.Pose
	persist *geom.Pose
	touched *interact.TouchTicket
	pointed interact.PointTicket
}

func (g *Grabbable) Update(acc *interact.Accumulator, pose geom.Pose, shape geom.Shape) GrabTicket {
	data := acc.Data()
	down := data.Trigger > g.threshold
	t := GrabTicket{index: acc.Index(), pose: pose}

	switch {
	case g.state.Held() && down:
		offset := g.state.Offset
		t.persist = &offset
		acc.Block()
	case g.state.Held():
		// Released this frame; the controller stays inert until next frame.
		acc.Block()
	case data.Pressed(g.threshold):
		touched := acc.Touched(pose, shape)
		t.touched = &touched
	}
	t.pointed = acc.PointingLaser(pose, shape, true)
	return t
}

func (g *Grabbable) Apply(t GrabTicket, reply *interact.Reply) GrabState {
	g.state = t.Resolve(reply)
	return g.state
}

func (t GrabTicket) Resolve(reply *interact.Reply) GrabState {
	con := reply.Controller(t.index).Data
	held := func(offset geom.Pose) GrabState {
		return GrabState{
			Kind:   GrabHeld,
			Offset: offset,
			LinVel: con.LinVel.Add(con.AngVel.Cross(con.Pose.TransformVector(offset.Translation))),
			AngVel: con.AngVel,
		}
	}

	switch {
	case t.persist != nil:
		return held(*t.persist)
	case t.touched != nil && t.touched.Resolve(reply):
		return held(con.Pose.Inverse().Mul(t.pose))
	}
	if _, ok := t.pointed.Resolve(reply); ok {
		return GrabState{Kind: GrabPointed}
	}
	return GrabState{Kind: GrabFree}
}
