package manipulate

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/vrscene/internal/core/controller"
	"github.com/zeusync/vrscene/internal/core/geom"
	"github.com/zeusync/vrscene/internal/core/interact"
)

const (
	DefaultYankSpeed     = 1.0
	DefaultGrabThreshold = 0.5
)

type Params struct {
	// InvYankOffset is the pose a yanked object settles at, relative to the controller.
	InvYankOffset geom.Pose
	// YankSpeed is the flight time of a yank in seconds.
	YankSpeed     float64
	GrabThreshold float64
}

func DefaultParams() Params {
	return Params{
		InvYankOffset: geom.Identity(),
		YankSpeed:     DefaultYankSpeed,
		GrabThreshold: DefaultGrabThreshold,
	}
}

func (p Params) Validate() error {
	if !(p.YankSpeed > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidYankSpeed, p.YankSpeed)
	}
	if !(p.GrabThreshold > 0 && p.GrabThreshold < 1) {
		return fmt.Errorf("%w: %v", ErrInvalidGrabThreshold, p.GrabThreshold)
	}
	return nil
}

// Moveable is the grab/yank state machine of one object. It persists across
// frames; every frame it submits queries with Update and advances with Apply.
type Moveable struct {
	state State
}

func (m *Moveable) State() State {
	return m.state
}

// Reset drops any hold, e.g. when the object is respawned.
func (m *Moveable) Reset() {
	m.state = Free()
}

type probe struct {
	index   controller.Index
	pointed interact.PointTicket
	touched interact.TouchTicket
}

// Ticket carries everything needed to advance a Moveable once the frame's
// interactions resolve.
type Ticket struct {
	prev   State
	pose   geom.Pose
	params Params
	dYank  float64
	probes [2]probe
}

// Update registers the object's queries with both controllers. A held object
// blocks its holder for everything else this frame and does not occlude.
func (m *Moveable) Update(ic *interact.Coordinator, pose geom.Pose, shape geom.Shape, params Params) Ticket {
	if holder, held := m.state.Holder(); held {
		ic.Controller(holder).Block()
	}
	stops := m.state.IsFree()

	t := Ticket{
		prev:   m.state,
		pose:   pose,
		params: params,
		dYank:  ic.Dt() / params.YankSpeed,
	}
	for n, i := range controller.Both {
		acc := ic.Controller(i)
		t.probes[n] = probe{
			index:   i,
			pointed: acc.PointingLaser(pose, shape, stops),
			touched: acc.Touched(pose, shape),
		}
	}
	return t
}

// Apply resolves the ticket and stores the resulting state.
func (m *Moveable) Apply(t Ticket, reply *interact.Reply) MoveData {
	next, data := t.Resolve(reply)
	m.state = next
	return data
}

// Resolve computes the next state and the kinematic override without
// touching the Moveable.
func (t Ticket) Resolve(reply *interact.Reply) (State, MoveData) {
	next := t.transition(reply)
	return next, t.kinematics(next, reply)
}

func (t Ticket) transition(reply *interact.Reply) State {
	switch t.prev.Kind {
	case KindFree:
		for _, p := range t.probes {
			con := reply.Controller(p.index).Data
			_, pointed := p.pointed.Resolve(reply)
			touched := p.touched.Resolve(reply)
			if pointed && con.Menu {
				return YankedBy(p.index, 0)
			}
			if con.Trigger > t.params.GrabThreshold && touched {
				return GrabbedBy(p.index)
			}
		}
		return Free()

	case KindYanked:
		progress := t.prev.Progress + t.dYank
		if progress > 1 && !reply.Controller(t.prev.By).Data.Menu {
			return Free()
		}
		return YankedBy(t.prev.By, math.Min(progress, 1))

	case KindGrabbed:
		if reply.Controller(t.prev.By).Data.Trigger < t.params.GrabThreshold {
			return Free()
		}
		return t.prev
	}
	return Free()
}

func (t Ticket) kinematics(s State, reply *interact.Reply) MoveData {
	switch s.Kind {
	case KindGrabbed:
		con := reply.Controller(s.By).Data
		return MoveData{
			Intent: IntentManipulate,
			Fixed: &Fixed{
				By:        s.By,
				Pose:      con.PoseDelta.Mul(t.pose),
				InvOffset: con.Pose.Inverse().Mul(t.pose),
				LinVel:    carried(con, t.pose.Translation),
				AngVel:    con.AngVel,
			},
		}

	case KindYanked:
		con := reply.Controller(s.By).Data
		dest := con.Pose.Mul(t.params.InvYankOffset)
		fixed := &Fixed{
			By:        s.By,
			InvOffset: con.Pose.Inverse().Mul(t.pose),
		}
		if s.Progress < 1 {
			dp := clamp01(t.dYank / (1 - s.Progress + t.dYank))
			fixed.Pose = geom.Interpolate(t.pose, dest, dp)
			if con.Dt > 0 {
				fixed.LinVel = fixed.Pose.Translation.Sub(t.pose.Translation).Mul(1 / con.Dt)
				turn := fixed.Pose.Rotation.Mul(t.pose.Rotation.Inverse())
				fixed.AngVel = geom.ScaledAxis(turn).Mul(1 / con.Dt)
			}
		} else {
			fixed.Pose = dest
			fixed.LinVel = carried(con, dest.Translation)
			fixed.AngVel = con.AngVel
		}
		return MoveData{Intent: IntentMove, Fixed: fixed}
	}
	return MoveData{Intent: IntentFree}
}

// carried is the velocity of a point rigidly attached to the controller.
func carried(con controller.Snapshot, point mgl64.Vec3) mgl64.Vec3 {
	return con.LinVel.Add(con.AngVel.Cross(point.Sub(con.Origin())))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
