// Package frame runs the submit, resolve and consume phases of one frame
// across the interaction and physics coordinators.
package frame

import (
	"fmt"

	"github.com/zeusync/vrscene/internal/core/assert"
	"github.com/zeusync/vrscene/internal/core/controller"
	"github.com/zeusync/vrscene/internal/core/interact"
	"github.com/zeusync/vrscene/internal/core/physics"
)

type Phase uint8

const (
	PhaseSubmit Phase = iota
	PhaseConsume
)

func (p Phase) String() string {
	switch p {
	case PhaseSubmit:
		return "submit"
	case PhaseConsume:
		return "consume"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// Meta is scene-wide state that objects may change while consuming a frame;
// it is carried into the next frame.
type Meta struct {
	PhysicsSpeed float64
}

func DefaultMeta() Meta {
	return Meta{PhysicsSpeed: 1}
}

// Frame owns the two coordinators of one frame.
type Frame struct {
	number   uint64
	dt       float64
	meta     Meta
	phase    Phase
	interact *interact.Coordinator
	physics  *physics.Coordinator
}

// New starts a frame in the submit phase. dt is the elapsed wall time;
// engine receives every body submitted this frame.
func New(number uint64, primary, secondary controller.Snapshot, dt float64, engine physics.Engine, meta Meta) *Frame {
	return &Frame{
		number:   number,
		dt:       dt,
		meta:     meta,
		interact: interact.NewCoordinator(number, primary, secondary, dt),
		physics:  physics.NewCoordinator(number, engine),
	}
}

func (f *Frame) Number() uint64 {
	return f.number
}

func (f *Frame) Dt() float64 {
	return f.dt
}

func (f *Frame) Meta() Meta {
	return f.meta
}

func (f *Frame) Phase() Phase {
	return f.phase
}

func (f *Frame) Interact() *interact.Coordinator {
	return f.interact
}

func (f *Frame) Physics() *physics.Coordinator {
	return f.physics
}

// Resolve ends the submit phase: occlusion is applied and the world is
// stepped by stepDt, once.
func (f *Frame) Resolve(stepDt float64) *Reply {
	assert.That(f.phase == PhaseSubmit, ErrAlreadyResolved, "frame %d in %s phase", f.number, f.phase)
	f.phase = PhaseConsume
	return &Reply{
		Number:   f.number,
		StepDt:   stepDt,
		Interact: f.interact.Resolve(),
		Physics:  f.physics.Resolve(stepDt),
		Meta:     f.meta,
	}
}

// Reply is shared by every ticket of a frame. Only Meta may be written,
// and only during consume.
type Reply struct {
	Number   uint64
	StepDt   float64
	Interact *interact.Reply
	Physics  *physics.Reply
	Meta     Meta
}

// Object is anything that takes part in frames.
type Object interface {
	Update(f *Frame) Ticket
}

// Ticket is consumed exactly once with the frame's reply.
type Ticket interface {
	Consume(r *Reply)
}

type TicketFunc func(r *Reply)

func (fn TicketFunc) Consume(r *Reply) {
	fn(r)
}
